package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable reports whether the provider is configured and ready.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance. cfg carries optional per-instance
// overrides on top of the configuration captured by the factory.
type Factory[T Provider] func(cfg map[string]any) (T, error)
