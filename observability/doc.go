// Package observability wires OpenTelemetry tracing and metrics for the
// gateway.
//
// InitTracer and InitMeter install global providers that export over
// OTLP/HTTP. Either one left disabled keeps the global no-op provider in
// place, so StartSpan and the Metrics instruments cost almost nothing.
package observability
