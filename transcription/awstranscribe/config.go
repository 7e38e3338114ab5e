package awstranscribe

import (
	"fmt"

	"github.com/kbukum/scribe/storage/s3"
)

// Defaults for the batch variant.
const (
	DefaultJobPrefix     = "scribe"
	DefaultStagingPrefix = "recordings"
	DefaultMediaFormat   = "mp3"
)

// Config holds AWS settings. Credentials, region, bucket and endpoint are
// shared with the S3 staging bucket.
type Config struct {
	s3.Config `yaml:",inline" mapstructure:",squash"`

	// JobPrefix starts every generated transcription job name.
	JobPrefix string `yaml:"job_prefix" mapstructure:"job_prefix"`
	// StagingPrefix is the key prefix for local files staged to the bucket.
	StagingPrefix string `yaml:"staging_prefix" mapstructure:"staging_prefix"`
	// MediaFormat is used when the format cannot be derived from the file extension.
	MediaFormat string `yaml:"media_format" mapstructure:"media_format"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Config.ApplyDefaults()
	if c.JobPrefix == "" {
		c.JobPrefix = DefaultJobPrefix
	}
	if c.StagingPrefix == "" {
		c.StagingPrefix = DefaultStagingPrefix
	}
	if c.MediaFormat == "" {
		c.MediaFormat = DefaultMediaFormat
	}
}

// Validate checks that jobs can be started and written to the bucket.
func (c *Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("aws: %w", err)
	}
	if !validFormat(c.MediaFormat) {
		return fmt.Errorf("aws: unsupported media_format %q", c.MediaFormat)
	}
	return nil
}
