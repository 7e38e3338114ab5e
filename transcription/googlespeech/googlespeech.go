// Package googlespeech transcribes audio with Google Cloud Speech
// synchronous recognition.
//
// Local files are sent inline as request content; gs:// URIs are passed by
// reference. The transcript is the top alternative of every result joined
// with newlines.
package googlespeech

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/transcription"
)

// ProviderName is the registered name for the synchronous provider.
const ProviderName = "google"

// Client is the subset of the Speech client used by Provider.
type Client interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

// Provider implements transcription.Provider on Google Cloud Speech.
type Provider struct {
	client Client
	cfg    Config
	opts   transcription.Options
	closer func() error
}

// New creates a Provider from an existing client.
func New(client Client, cfg Config, opts transcription.Options) *Provider {
	return &Provider{client: client, cfg: cfg, opts: opts}
}

// NewProvider dials the Speech API.
func NewProvider(ctx context.Context, cfg Config, opts transcription.Options) (*Provider, error) {
	var copts []option.ClientOption
	if cfg.ApplicationCredentials != "" {
		copts = append(copts, option.WithCredentialsFile(cfg.ApplicationCredentials))
	}
	if cfg.Endpoint != "" {
		copts = append(copts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := speech.NewClient(ctx, copts...)
	if err != nil {
		return nil, fmt.Errorf("google: create speech client: %w", err)
	}
	p := New(client, cfg, opts)
	p.closer = client.Close
	return p, nil
}

// Factory returns a provider.Factory that creates Providers from cfg.
// Recognized overrides: "application_credentials", "endpoint", "model",
// "language_code".
func Factory(cfg Config, opts transcription.Options) provider.Factory[transcription.Provider] {
	return func(overrides map[string]any) (transcription.Provider, error) {
		if v, ok := overrides["application_credentials"].(string); ok {
			cfg.ApplicationCredentials = v
		}
		if v, ok := overrides["endpoint"].(string); ok {
			cfg.Endpoint = v
		}
		if v, ok := overrides["model"].(string); ok {
			cfg.Model = v
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

// IsAvailable reports whether a client exists.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.client != nil }

// Close releases the underlying connection.
func (p *Provider) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}

// Transcribe sends the audio at req.AudioPath for synchronous recognition.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	req = req.Resolve(p.opts)

	audio, err := recognitionAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: p.recognitionConfig(req),
		Audio:  audio,
	})
	if err != nil {
		return nil, transcription.Transport("recognize", err)
	}
	return toResponse(resp, req.Language)
}

func (p *Provider) recognitionConfig(req transcription.Request) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		Encoding:                   speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
		SampleRateHertz:            req.SampleRateHertz,
		LanguageCode:               req.Language,
		EnableAutomaticPunctuation: req.Punctuation(),
		UseEnhanced:                p.cfg.UseEnhanced,
		Model:                      p.cfg.Model,
	}
	if req.SpeakerLabels > 1 {
		cfg.DiarizationConfig = &speechpb.SpeakerDiarizationConfig{
			EnableSpeakerDiarization: true,
			MinSpeakerCount:          1,
			MaxSpeakerCount:          int32(req.SpeakerLabels),
		}
	}
	return cfg
}

func recognitionAudio(location string) (*speechpb.RecognitionAudio, error) {
	if strings.HasPrefix(location, "gs://") {
		return &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: location},
		}, nil
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return &speechpb.RecognitionAudio{
		AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
	}, nil
}

// toResponse joins the top alternative of each result. A response with no
// usable transcript is reported as ErrNoSpeechDetected.
func toResponse(resp *speechpb.RecognizeResponse, language string) (*transcription.Response, error) {
	var (
		lines    []string
		segments []transcription.Segment
		start    float64
	)
	for _, result := range resp.GetResults() {
		end := result.GetResultEndTime().AsDuration().Seconds()
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			start = end
			continue
		}
		text := alts[0].GetTranscript()
		if strings.TrimSpace(text) == "" {
			start = end
			continue
		}
		lines = append(lines, text)
		segments = append(segments, transcription.Segment{
			Start:      start,
			End:        end,
			Text:       text,
			Confidence: alts[0].GetConfidence(),
		})
		if lc := result.GetLanguageCode(); lc != "" {
			language = lc
		}
		start = end
	}

	if len(lines) == 0 {
		return nil, transcription.ErrNoSpeechDetected
	}
	return &transcription.Response{
		Text:     strings.Join(lines, "\n"),
		Segments: segments,
		Language: language,
	}, nil
}
