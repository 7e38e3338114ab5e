package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{}, Resource{ServiceName: "scribe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("unexpected sample rate %v", cfg.SampleRate)
	}
}

func TestStartSpan_AttributesAndError(t *testing.T) {
	rec := withRecorder(t)

	ctx, span := StartSpan(context.Background(), "scribe.google")
	SetSpanAttribute(ctx, AttrProvider, "google")
	SetSpanAttribute(ctx, "bytes", 42)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	s := ended[0]
	if s.Name() != "scribe.google" {
		t.Errorf("unexpected span name %q", s.Name())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status().Code)
	}
	found := false
	for _, kv := range s.Attributes() {
		if string(kv.Key) == AttrProvider && kv.Value.AsString() == "google" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected provider attribute, got %v", s.Attributes())
	}
}

func TestSampler(t *testing.T) {
	if sampler(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("expected AlwaysSample for rate 1")
	}
	if sampler(0).Description() != sdktrace.NeverSample().Description() {
		t.Error("expected NeverSample for rate 0")
	}
}

func TestInitMeter_Disabled(t *testing.T) {
	shutdown, err := InitMeter(context.Background(), MetricsConfig{}, Resource{ServiceName: "scribe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	m, err := NewMetrics(Meter("scribe"))
	if err != nil {
		t.Fatalf("NewMetrics on the global provider: %v", err)
	}
	ctx := context.Background()
	m.RecordStart(ctx, "google")
	m.RecordError(ctx, "google", "transport_error")
	m.RecordEnd(ctx, "google", "error", 0)
}

func TestMetricsConfigApplyDefaults(t *testing.T) {
	cfg := MetricsConfig{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.Interval != DefaultMetricsInterval {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
