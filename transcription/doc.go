// Package transcription defines the provider interface and common types
// for the speech-to-text backends the gateway can forward uploads to.
//
// Exactly one backend is chosen at process start and used for every
// request. Backends report failures with the sentinel errors in this
// package so the HTTP layer can classify them without knowing which
// cloud service produced them.
//
// # Backends
//
//   - transcription/awstranscribe: AWS Transcribe batch jobs
//   - transcription/azurespeech: Azure Speech push-stream recognition
//   - transcription/googlespeech: Google Cloud Speech synchronous recognize
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory(googlespeech.ProviderName, googlespeech.Factory(cfg.Google, cfg.Transcription))
//	p, err := reg.Create(googlespeech.ProviderName, nil)
//	p = transcription.Instrument(p, log, "scribe", nil)
//	resp, err := p.Transcribe(ctx, transcription.Request{AudioPath: path})
package transcription
