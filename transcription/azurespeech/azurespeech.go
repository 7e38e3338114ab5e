// Package azurespeech transcribes audio with Azure Speech single-shot
// recognition over a push audio stream.
//
// The audio file is written into the stream in fixed-size chunks from one
// goroutine, the stream is closed, and the first terminal event decides the
// result. The SDK binding lives in the speechsdk subpackage and is injected
// as an Opener.
package azurespeech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/transcription"
)

// ProviderName is the registered name for the streaming provider.
const ProviderName = "azure"

// Provider implements transcription.Provider on Azure Speech.
type Provider struct {
	cfg  Config
	opts transcription.Options
	open Opener
}

// New creates a Provider. open is usually speechsdk.Open.
func New(cfg Config, opts transcription.Options, open Opener) *Provider {
	cfg.ApplyDefaults()
	return &Provider{cfg: cfg, opts: opts, open: open}
}

// Factory returns a provider.Factory that creates Providers from cfg.
// Recognized overrides: "speech_key", "speech_region", "language_code".
func Factory(cfg Config, opts transcription.Options, open Opener) provider.Factory[transcription.Provider] {
	return func(overrides map[string]any) (transcription.Provider, error) {
		if v, ok := overrides["speech_key"].(string); ok {
			cfg.SpeechKey = v
		}
		if v, ok := overrides["speech_region"].(string); ok {
			cfg.SpeechRegion = v
		}
		if v, ok := overrides["language_code"].(string); ok {
			opts.LanguageCode = v
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if open == nil {
			return nil, errors.New("azure: no speech session opener")
		}
		return New(cfg, opts, open), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the subscription is configured.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.open != nil && p.cfg.SpeechKey != "" && p.cfg.SpeechRegion != ""
}

// Transcribe streams the file at req.AudioPath and waits for one recognition
// outcome.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	req = req.Resolve(p.opts)

	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	defer f.Close()

	sess, err := p.open(ctx, SessionConfig{
		Key:      p.cfg.SpeechKey,
		Region:   p.cfg.SpeechRegion,
		Language: req.Language,
	})
	if err != nil {
		return nil, transcription.Transport("open recognizer", err)
	}
	defer sess.Close()

	if err := p.push(sess, f); err != nil {
		return nil, err
	}

	out, err := sess.RecognizeOnce(ctx)
	if err != nil {
		return nil, transcription.Transport("recognize", err)
	}

	switch out.Reason {
	case ReasonRecognized:
		return &transcription.Response{Text: out.Text, Language: req.Language}, nil
	case ReasonNoMatch:
		return nil, transcription.ErrNoSpeechDetected
	case ReasonCanceled:
		ce := &transcription.CanceledError{Reason: out.CancellationReason}
		if out.CancellationReason == CancellationError {
			ce.Details = out.ErrorDetails
		}
		return nil, ce
	default:
		return nil, fmt.Errorf("azure: unexpected recognition reason %d", out.Reason)
	}
}

// push copies r into the session stream chunk by chunk and closes the stream.
// The stream is closed on every path so a waiting recognizer can finish.
func (p *Provider) push(sess Session, r io.Reader) error {
	defer sess.CloseStream()

	buf := make([]byte, p.cfg.ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := sess.Write(buf[:n]); werr != nil {
				return transcription.Transport("write audio", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read audio file: %w", err)
		}
	}
}
