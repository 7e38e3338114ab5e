// Package config loads service configuration with Viper.
//
// Values come from an optional config.yml, an optional .env file (loaded
// with godotenv) and the process environment. Every mapstructure key of the
// target struct is bound to the environment variable obtained by upper-casing
// the dotted path and replacing dots with underscores, so `aws.access_key_id`
// reads AWS_ACCESS_KEY_ID and `recordings.folder_name` reads
// RECORDINGS_FOLDER_NAME.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("scribe", &cfg, config.WithDefaults(app.Defaults()))
package config
