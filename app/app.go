package app

import (
	"context"
	"fmt"

	"github.com/kbukum/scribe/bootstrap"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/server/endpoint"
	"github.com/kbukum/scribe/storage/local"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/transcription/azurespeech"
	"github.com/kbukum/scribe/upload"
)

// Service is the assembled HTTP service.
type Service struct {
	*bootstrap.App[*Config]
	Server   *server.Server
	Provider transcription.Provider
}

// Option customizes Build.
type Option func(*buildOptions)

type buildOptions struct {
	provider transcription.Provider
	app      []bootstrap.Option
}

// WithProvider replaces the configured backend with p.
func WithProvider(p transcription.Provider) Option {
	return func(o *buildOptions) { o.provider = p }
}

// WithAppOptions passes options through to bootstrap.NewApp.
func WithAppOptions(opts ...bootstrap.Option) Option {
	return func(o *buildOptions) { o.app = append(o.app, opts...) }
}

// Instrument starts the trace and metric exporters configured in a.Cfg,
// registers their flush with a.OnStop, and wraps raw with logging, tracing
// and metrics.
func Instrument(ctx context.Context, a *bootstrap.App[*Config], raw transcription.Provider) (transcription.Provider, error) {
	cfg := a.Cfg
	res := observability.Resource{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
	}

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing, res)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.OnStop(shutdownTracer)

	shutdownMeter, err := observability.InitMeter(ctx, cfg.Metrics, res)
	if err != nil {
		return nil, fmt.Errorf("init meter: %w", err)
	}
	a.OnStop(shutdownMeter)

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, err
	}
	return transcription.Instrument(raw, a.Logger, cfg.Name, metrics), nil
}

// Build validates cfg and wires telemetry, the provider, the recordings
// directory and the HTTP server. Nothing is started until Run.
func Build(ctx context.Context, cfg *Config, open azurespeech.Opener, opts ...Option) (*Service, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	a, err := bootstrap.NewApp(cfg, o.app...)
	if err != nil {
		return nil, err
	}
	log := a.Logger

	raw := o.provider
	if raw == nil {
		if raw, err = NewProvider(cfg, open); err != nil {
			return nil, err
		}
	}
	p, err := Instrument(ctx, a, raw)
	if err != nil {
		return nil, err
	}

	store, err := local.NewStorage(cfg.Recordings.FolderName)
	if err != nil {
		return nil, err
	}
	files := upload.NewTempFiles(store, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(endpoint.Service{
		Name:     cfg.Name,
		Version:  cfg.Version,
		Provider: raw.Name(),
	}, a.Components.HealthAll)
	upload.NewHandler(p, files, cfg.Recordings.AllowedTypes, log).Register(srv.GinEngine())

	if err := a.RegisterComponent(upload.NewComponent(files, log)); err != nil {
		return nil, err
	}
	if err := a.RegisterComponent(NewProviderComponent(raw, cfg.Transcription, log)); err != nil {
		return nil, err
	}
	if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}

	return &Service{App: a, Server: srv, Provider: p}, nil
}
