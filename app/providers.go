package app

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/transcription/awstranscribe"
	"github.com/kbukum/scribe/transcription/azurespeech"
	"github.com/kbukum/scribe/transcription/googlespeech"
)

// NewRegistry registers a factory for each backend. open binds the Azure
// variant to the Speech SDK; without it the azure factory fails.
func NewRegistry(cfg *Config, open azurespeech.Opener) *provider.Registry[transcription.Provider] {
	reg := transcription.NewRegistry()
	reg.RegisterFactory(awstranscribe.ProviderName, awstranscribe.Factory(cfg.AWS, cfg.Transcription))
	reg.RegisterFactory(azurespeech.ProviderName, azurespeech.Factory(cfg.Azure, cfg.Transcription, open))
	reg.RegisterFactory(googlespeech.ProviderName, googlespeech.Factory(cfg.Google, cfg.Transcription))
	return reg
}

// NewProvider creates the backend named by cfg.Provider.
func NewProvider(cfg *Config, open azurespeech.Opener) (transcription.Provider, error) {
	p, err := NewRegistry(cfg, open).Create(cfg.Provider, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}

const providerComponentName = "transcription"

var (
	_ component.Component   = (*ProviderComponent)(nil)
	_ component.Describable = (*ProviderComponent)(nil)
)

// ProviderComponent ties a provider's SDK client to the app lifecycle.
type ProviderComponent struct {
	provider transcription.Provider
	opts     transcription.Options
	log      *logger.Logger
}

// NewProviderComponent wraps p. p should be the raw provider, not the
// instrumented one, so Stop can reach its Close method.
func NewProviderComponent(p transcription.Provider, opts transcription.Options, log *logger.Logger) *ProviderComponent {
	if log == nil {
		log = logger.NewNop()
	}
	return &ProviderComponent{provider: p, opts: opts, log: log.WithComponent(providerComponentName)}
}

// Name returns the component name used for registration.
func (c *ProviderComponent) Name() string { return providerComponentName }

// Start logs the selected backend. The client was created with the provider.
func (c *ProviderComponent) Start(context.Context) error {
	c.log.Info("Transcription provider selected", logger.Fields(
		logger.FieldProvider, c.provider.Name(),
		"language", c.opts.LanguageCode,
	))
	return nil
}

// Stop closes the SDK client if the provider holds one.
func (c *ProviderComponent) Stop(context.Context) error {
	if closer, ok := c.provider.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Health reports degraded when the provider is not configured.
func (c *ProviderComponent) Health(ctx context.Context) component.Health {
	if !c.provider.IsAvailable(ctx) {
		return component.Health{
			Name:    providerComponentName,
			Status:  component.StatusDegraded,
			Message: c.provider.Name() + " provider not available",
		}
	}
	return component.Health{Name: providerComponentName, Status: component.StatusHealthy}
}

// Describe returns summary info for the startup log.
func (c *ProviderComponent) Describe() component.Description {
	return component.Description{
		Name:    "Transcription",
		Type:    "provider",
		Details: fmt.Sprintf("provider=%s language=%s", c.provider.Name(), c.opts.LanguageCode),
	}
}
