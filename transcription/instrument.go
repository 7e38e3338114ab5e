package transcription

import (
	"context"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/provider"
)

// executor adapts a Provider to provider.RequestResponse.
type executor struct {
	Provider
}

func (e executor) Execute(ctx context.Context, req Request) (*Response, error) {
	return e.Transcribe(ctx, req)
}

type instrumented struct {
	provider.RequestResponse[Request, *Response]
}

func (i *instrumented) Transcribe(ctx context.Context, req Request) (*Response, error) {
	return i.Execute(ctx, req)
}

// Instrument wraps p so every Transcribe call is logged and traced as a span
// named "{service}.{provider}". With metrics set, calls are also counted and
// timed, and failures are labeled with their Cause.
func Instrument(p Provider, log *logger.Logger, service string, metrics *observability.Metrics) Provider {
	mws := []provider.Middleware[Request, *Response]{
		provider.WithLogging[Request, *Response](log),
		provider.WithTracing[Request, *Response](service),
	}
	if metrics != nil {
		mws = append(mws, provider.WithMetrics[Request, *Response](metrics, Cause))
	}
	return &instrumented{provider.Chain(mws...)(executor{p})}
}
