package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/scribe/app"
	"github.com/kbukum/scribe/bootstrap"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/transcription/azurespeech"
	"github.com/kbukum/scribe/version"
)

// errUsage marks an invocation with the wrong number of arguments.
var errUsage = errors.New("expected exactly one audio file path or URI")

// Options configures a standalone transcriber command.
type Options struct {
	// Use is the command name, e.g. "transcribe-google".
	Use string
	// Provider is the backend name: aws, azure or google.
	Provider string
	// AzureOpener binds the azure backend to the Speech SDK.
	AzureOpener azurespeech.Opener
	// NewProvider replaces the registry lookup.
	NewProvider func(cfg *app.Config) (transcription.Provider, error)
}

type transcribeFlags struct {
	configFile string
	envFile    string
	language   string
	speakers   int
	verbose    bool
}

// NewTranscribeCommand returns a command that transcribes one file with the
// provider named in opts and prints the text to stdout.
func NewTranscribeCommand(opts Options) *cobra.Command {
	var f transcribeFlags

	cmd := &cobra.Command{
		Use:           opts.Use + " <audio-file-path-or-uri>",
		Short:         fmt.Sprintf("Transcribe an audio file with the %s provider", opts.Provider),
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return runTranscribe(cmd.Context(), opts, f, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "path to config.yml")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "path to a .env file")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "BCP-47 language code (default from config)")
	cmd.Flags().IntVar(&f.speakers, "speakers", 0, "maximum number of speakers to label")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log at info level")
	return cmd
}

// Run executes a transcriber command and returns the process exit code.
// Wrong usage prints the usage text to stderr.
func Run(opts Options, args []string, stdout, stderr io.Writer) int {
	cmd := NewTranscribeCommand(opts)
	return execute(cmd, args, stdout, stderr)
}

func execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

func runTranscribe(ctx context.Context, opts Options, f transcribeFlags, location string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(f.configFile, f.envFile)
	if err != nil {
		return err
	}
	cfg.Provider = opts.Provider
	cfg.ApplyDefaults()
	if !f.verbose {
		cfg.Logging.Level = "warn"
	}
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, stderr)

	a, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log), bootstrap.WithSummaryOutput(io.Discard))
	if err != nil {
		return err
	}

	newProvider := opts.NewProvider
	if newProvider == nil {
		newProvider = func(cfg *app.Config) (transcription.Provider, error) {
			return app.NewProvider(cfg, opts.AzureOpener)
		}
	}
	raw, err := newProvider(cfg)
	if err != nil {
		return err
	}
	if err := a.RegisterComponent(app.NewProviderComponent(raw, cfg.Transcription, log)); err != nil {
		return err
	}
	p, err := app.Instrument(ctx, a, raw)
	if err != nil {
		return err
	}

	return a.RunTask(ctx, func(ctx context.Context) error {
		resp, err := p.Transcribe(ctx, transcription.Request{
			AudioPath:     location,
			Language:      f.language,
			SpeakerLabels: f.speakers,
		})
		if err != nil {
			return errors.New(transcription.Classify(p.Name(), err).Message)
		}
		printResponse(stdout, resp)
		return nil
	})
}

func printResponse(w io.Writer, resp *transcription.Response) {
	if resp.Job != nil {
		fmt.Fprintf(w, "Transcription job %s: %s\n", resp.Job.Name, resp.Job.Status)
		if resp.Job.MediaURI != "" {
			fmt.Fprintf(w, "Media: %s\n", resp.Job.MediaURI)
		}
		return
	}
	fmt.Fprintln(w, resp.Text)
}
