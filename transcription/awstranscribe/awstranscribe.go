// Package awstranscribe starts AWS Transcribe batch jobs for uploaded audio.
//
// The job reads its media from S3 and writes the transcript to the output
// bucket. Local files are staged into the bucket first. Job results are not
// polled: Transcribe returns as soon as the job is accepted.
package awstranscribe

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/google/uuid"

	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/storage"
	"github.com/kbukum/scribe/storage/s3"
	"github.com/kbukum/scribe/transcription"
)

// ProviderName is the registered name for the batch-job provider.
const ProviderName = "aws"

// API is the subset of the Transcribe client used by Provider.
type API interface {
	StartTranscriptionJob(ctx context.Context, in *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
}

// Provider implements transcription.Provider on AWS Transcribe.
type Provider struct {
	api   API
	stage storage.Storage
	cfg   Config
	opts  transcription.Options
	newID func() string
}

// New creates a Provider from an existing client and staging storage.
func New(api API, stage storage.Storage, cfg Config, opts transcription.Options) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		api:   api,
		stage: stage,
		cfg:   cfg,
		opts:  opts,
		newID: uuid.NewString,
	}
}

// NewProvider loads the AWS configuration and builds the Transcribe and S3
// clients.
func NewProvider(ctx context.Context, cfg Config, opts transcription.Options) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := s3.LoadAWSConfig(ctx, &cfg.Config)
	if err != nil {
		return nil, err
	}

	var tOpts []func(*transcribe.Options)
	if cfg.Endpoint != "" {
		tOpts = append(tOpts, func(o *transcribe.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	client := transcribe.NewFromConfig(awsCfg, tOpts...)
	return New(client, s3.NewFromConfig(awsCfg, &cfg.Config), cfg, opts), nil
}

// Factory returns a provider.Factory that creates Providers from cfg.
// Recognized overrides: "bucket", "job_prefix", "staging_prefix",
// "media_format", "language_code".
func Factory(cfg Config, opts transcription.Options) provider.Factory[transcription.Provider] {
	return func(overrides map[string]any) (transcription.Provider, error) {
		if v, ok := overrides["bucket"].(string); ok {
			cfg.Bucket = v
		}
		if v, ok := overrides["job_prefix"].(string); ok {
			cfg.JobPrefix = v
		}
		if v, ok := overrides["staging_prefix"].(string); ok {
			cfg.StagingPrefix = v
		}
		if v, ok := overrides["media_format"].(string); ok {
			cfg.MediaFormat = v
		}
		if v, ok := overrides["language_code"].(string); ok {
			opts.LanguageCode = v
		}
		p, err := NewProvider(context.Background(), cfg, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a client and output bucket are configured.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.api != nil && p.cfg.Bucket != ""
}

// Transcribe starts a transcription job for req.AudioPath and returns the
// job name and initial status.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	req = req.Resolve(p.opts)

	mediaURI, err := p.mediaURI(ctx, req.AudioPath)
	if err != nil {
		return nil, err
	}

	jobName := p.cfg.JobPrefix + "-" + p.newID()
	input := &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		LanguageCode:         types.LanguageCode(req.Language),
		MediaFormat:          types.MediaFormat(mediaFormat(req.AudioPath, p.cfg.MediaFormat)),
		Media:                &types.Media{MediaFileUri: aws.String(mediaURI)},
		OutputBucketName:     aws.String(p.cfg.Bucket),
	}
	if req.SpeakerLabels > 1 {
		input.Settings = &types.Settings{
			ShowSpeakerLabels: aws.Bool(true),
			MaxSpeakerLabels:  aws.Int32(int32(req.SpeakerLabels)),
		}
	}

	out, err := p.api.StartTranscriptionJob(ctx, input)
	if err != nil {
		return nil, transcription.Transport("start transcription job", err)
	}

	job := &transcription.Job{Name: jobName, MediaURI: mediaURI}
	if out.TranscriptionJob != nil {
		job.Name = aws.ToString(out.TranscriptionJob.TranscriptionJobName)
		job.Status = string(out.TranscriptionJob.TranscriptionJobStatus)
	}
	if job.Name == "" {
		job.Name = jobName
	}
	return &transcription.Response{Language: req.Language, Job: job}, nil
}

// mediaURI returns a location Transcribe can read. Remote URIs pass through;
// local files are uploaded under the staging prefix.
func (p *Provider) mediaURI(ctx context.Context, location string) (string, error) {
	if isRemote(location) {
		return location, nil
	}
	if p.stage == nil {
		return "", fmt.Errorf("aws: no staging bucket for local file %s", location)
	}

	f, err := os.Open(location)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}
	defer f.Close()

	key := path.Join(p.cfg.StagingPrefix, filepath.Base(location))
	if err := p.stage.Upload(ctx, key, f); err != nil {
		return "", transcription.Transport("stage media", err)
	}
	return p.stage.URL(ctx, key)
}

func isRemote(location string) bool {
	for _, scheme := range []string{"s3://", "https://", "http://"} {
		if strings.HasPrefix(location, scheme) {
			return true
		}
	}
	return false
}

// mediaFormat derives the Transcribe media format from the extension,
// falling back to def.
func mediaFormat(location, def string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(location)), ".")
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if validFormat(ext) {
		return ext
	}
	return def
}

func validFormat(format string) bool {
	for _, f := range types.MediaFormat("").Values() {
		if string(f) == format {
			return true
		}
	}
	return false
}
