package transcription

import "fmt"

// Default recognition settings.
const (
	DefaultLanguageCode  = "en-US"
	DefaultSampleRate    = 16000
	DefaultSpeakerLabels = 3
)

// Options holds recognition settings shared by all backends.
type Options struct {
	LanguageCode      string `yaml:"language_code" mapstructure:"language_code" validate:"required"`
	SampleRate        int32  `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0"`
	EnablePunctuation bool   `yaml:"enable_punctuation" mapstructure:"enable_punctuation"`
	SpeakerLabels     int    `yaml:"speaker_labels" mapstructure:"speaker_labels" validate:"gte=0,lte=10"`
}

// ApplyDefaults fills unset fields. EnablePunctuation is left alone because
// false is a valid choice; its default comes from the config loader.
func (o *Options) ApplyDefaults() {
	if o.LanguageCode == "" {
		o.LanguageCode = DefaultLanguageCode
	}
	if o.SampleRate == 0 {
		o.SampleRate = DefaultSampleRate
	}
}

// Validate checks the recognition settings.
func (o *Options) Validate() error {
	if o.LanguageCode == "" {
		return fmt.Errorf("transcription.language_code is required")
	}
	if o.SampleRate < 0 {
		return fmt.Errorf("transcription.sample_rate must be positive (got: %d)", o.SampleRate)
	}
	return nil
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		LanguageCode:      DefaultLanguageCode,
		SampleRate:        DefaultSampleRate,
		EnablePunctuation: true,
		SpeakerLabels:     DefaultSpeakerLabels,
	}
}
