// Package provider holds the small generic framework transcription backends
// plug into: a named Provider contract, a Registry of factories with cached
// instances, and RequestResponse middleware for logging and tracing.
//
// # Usage
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("google", googlespeech.Factory(cfg.Google, cfg.Transcription))
//	p, err := reg.Create("google", nil)
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out]("scribe"),
//	)(rawProvider)
package provider
