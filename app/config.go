package app

import (
	"fmt"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/transcription/awstranscribe"
	"github.com/kbukum/scribe/transcription/azurespeech"
	"github.com/kbukum/scribe/transcription/googlespeech"
	"github.com/kbukum/scribe/upload"
	"github.com/kbukum/scribe/validation"
	"github.com/kbukum/scribe/version"
)

// ServiceName names the service in logs, spans and config file lookup.
const ServiceName = "scribe"

// Config is the complete service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the transcription backend once at start.
	Provider string `yaml:"provider" mapstructure:"provider" validate:"oneof=aws azure google"`

	Server        server.Config               `yaml:"server" mapstructure:"server"`
	Recordings    upload.Config               `yaml:"recordings" mapstructure:"recordings"`
	Transcription transcription.Options       `yaml:"transcription" mapstructure:"transcription"`
	AWS           awstranscribe.Config        `yaml:"aws" mapstructure:"aws"`
	Azure         azurespeech.Config          `yaml:"azure" mapstructure:"azure"`
	Google        googlespeech.Config         `yaml:"google" mapstructure:"google"`
	Tracing       observability.Config        `yaml:"tracing" mapstructure:"tracing"`
	Metrics       observability.MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// Defaults are registered with the loader for keys whose zero value is a
// valid setting.
func Defaults() map[string]any {
	return map[string]any{
		"name":                             ServiceName,
		"provider":                         azurespeech.ProviderName,
		"transcription.enable_punctuation": true,
		"transcription.speaker_labels":     transcription.DefaultSpeakerLabels,
		"google.use_enhanced":              true,
	}
}

// Load reads config.yml, .env and the environment into a Config.
func Load(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	opts = append([]config.LoaderOption{config.WithDefaults(Defaults())}, opts...)
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Provider == "" {
		c.Provider = azurespeech.ProviderName
	}
	c.Server.ApplyDefaults()
	c.Recordings.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.AWS.ApplyDefaults()
	c.Azure.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Metrics.ApplyDefaults()
}

// Validate checks struct tags, every shared section and the section of the
// selected provider. Sections of unused providers may be empty.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Recordings.Validate(); err != nil {
		return err
	}
	if err := c.Transcription.Validate(); err != nil {
		return err
	}
	return c.ValidateProvider()
}

// ValidateProvider checks only the selected provider's section.
func (c *Config) ValidateProvider() error {
	switch c.Provider {
	case awstranscribe.ProviderName:
		return c.AWS.Validate()
	case azurespeech.ProviderName:
		return c.Azure.Validate()
	case googlespeech.ProviderName:
		return nil
	default:
		return fmt.Errorf("provider must be one of [aws azure google] (got: %s)", c.Provider)
	}
}
