package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/scribe/app"
	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/transcription/azurespeech"
	"github.com/kbukum/scribe/version"
)

// NewServerCommand returns the command that runs the HTTP service until
// SIGINT/SIGTERM.
func NewServerCommand(open azurespeech.Opener) *cobra.Command {
	var configFile, envFile string

	cmd := &cobra.Command{
		Use:           "scribe-server",
		Short:         "Serve POST /transcribe with the configured provider",
		Version:       version.Get().String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile, envFile)
			if err != nil {
				return err
			}
			svc, err := app.Build(cmd.Context(), cfg, open)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config.yml")
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file")
	return cmd
}

// RunServer executes the server command and returns the exit code.
func RunServer(open azurespeech.Opener, args []string, stdout, stderr io.Writer) int {
	return execute(NewServerCommand(open), args, stdout, stderr)
}

func loadConfig(configFile, envFile string) (*app.Config, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	return app.Load(opts...)
}
