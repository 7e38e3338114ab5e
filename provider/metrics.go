package provider

import (
	"context"
	"time"

	"github.com/kbukum/scribe/observability"
)

// WithMetrics returns a Middleware that records call count, duration,
// in-flight calls and errors. cause labels a failure; nil labels every
// failure "error".
func WithMetrics[I, O any](metrics *observability.Metrics, cause func(error) string) Middleware[I, O] {
	if cause == nil {
		cause = func(error) string { return "error" }
	}
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics, cause: cause}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
	cause   func(error) string
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	name := m.inner.Name()
	m.metrics.RecordStart(ctx, name)
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)

	status := "ok"
	if err != nil {
		status = "error"
		m.metrics.RecordError(ctx, name, m.cause(err))
	}
	m.metrics.RecordEnd(ctx, name, status, time.Since(start))
	return output, err
}
