package azurespeech

import "errors"

// DefaultChunkSize is the number of bytes pushed per stream write.
const DefaultChunkSize = 64 * 1024

// Config holds Azure Speech settings.
type Config struct {
	SpeechKey    string `yaml:"speech_key" mapstructure:"speech_key"`
	SpeechRegion string `yaml:"speech_region" mapstructure:"speech_region"`
	ChunkSize    int    `yaml:"chunk_size" mapstructure:"chunk_size" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
}

// Validate checks that the subscription is configured.
func (c *Config) Validate() error {
	var errs []error
	if c.SpeechKey == "" {
		errs = append(errs, errors.New("azure: speech_key is required"))
	}
	if c.SpeechRegion == "" {
		errs = append(errs, errors.New("azure: speech_region is required"))
	}
	return errors.Join(errs...)
}
