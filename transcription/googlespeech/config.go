package googlespeech

// Config holds Google Cloud Speech settings. With no credentials file the
// client uses Application Default Credentials.
type Config struct {
	ApplicationCredentials string `yaml:"application_credentials" mapstructure:"application_credentials"`
	Endpoint               string `yaml:"endpoint" mapstructure:"endpoint"`
	UseEnhanced            bool   `yaml:"use_enhanced" mapstructure:"use_enhanced"`
	Model                  string `yaml:"model" mapstructure:"model"`
}
