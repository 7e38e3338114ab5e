package upload

import (
	"fmt"
	"mime"
)

// Config holds the recordings directory and the MIME allow-list.
type Config struct {
	FolderName   string   `yaml:"folder_name" mapstructure:"folder_name" validate:"required"`
	AllowedTypes []string `yaml:"allowed_types" mapstructure:"allowed_types"`
}

// DefaultAllowedTypes are the formats browsers record in.
var DefaultAllowedTypes = []string{"audio/wav", "audio/webm"}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.FolderName == "" {
		c.FolderName = "recordings"
	}
	if len(c.AllowedTypes) == 0 {
		c.AllowedTypes = append([]string(nil), DefaultAllowedTypes...)
	}
}

// Validate checks that every allowed type parses as a media type.
func (c *Config) Validate() error {
	if c.FolderName == "" {
		return fmt.Errorf("recordings.folder_name is required")
	}
	for _, t := range c.AllowedTypes {
		if _, _, err := mime.ParseMediaType(t); err != nil {
			return fmt.Errorf("recordings.allowed_types: %q: %w", t, err)
		}
	}
	return nil
}
