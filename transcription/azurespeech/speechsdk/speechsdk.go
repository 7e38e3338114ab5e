// Package speechsdk binds azurespeech.Session to the Azure Speech SDK.
//
// The SDK links the native Speech library through cgo, so only the binaries
// import this package.
package speechsdk

import (
	"context"
	"fmt"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"

	"github.com/kbukum/scribe/transcription/azurespeech"
)

type session struct {
	stream     *audio.PushAudioInputStream
	audioCfg   *audio.AudioConfig
	speechCfg  *speech.SpeechConfig
	recognizer *speech.SpeechRecognizer

	// inflight is set when the caller stopped waiting on a recognition that
	// is still running; native handles are released once it delivers.
	inflight <-chan speech.SpeechRecognitionOutcome
}

// Open creates a push stream and a recognizer reading from it.
func Open(_ context.Context, cfg azurespeech.SessionConfig) (azurespeech.Session, error) {
	s := &session{}
	var err error

	if s.stream, err = audio.CreatePushAudioInputStream(); err != nil {
		return nil, fmt.Errorf("create push stream: %w", err)
	}
	if s.audioCfg, err = audio.NewAudioConfigFromStreamInput(s.stream); err != nil {
		s.Close()
		return nil, fmt.Errorf("create audio config: %w", err)
	}
	if s.speechCfg, err = speech.NewSpeechConfigFromSubscription(cfg.Key, cfg.Region); err != nil {
		s.Close()
		return nil, fmt.Errorf("create speech config: %w", err)
	}
	if cfg.Language != "" {
		if err = s.speechCfg.SetSpeechRecognitionLanguage(cfg.Language); err != nil {
			s.Close()
			return nil, fmt.Errorf("set recognition language: %w", err)
		}
	}
	if s.recognizer, err = speech.NewSpeechRecognizerFromConfig(s.speechCfg, s.audioCfg); err != nil {
		s.Close()
		return nil, fmt.Errorf("create recognizer: %w", err)
	}
	return s, nil
}

func (s *session) Write(p []byte) error { return s.stream.Write(p) }

func (s *session) CloseStream() { s.stream.CloseStream() }

func (s *session) RecognizeOnce(ctx context.Context) (azurespeech.Outcome, error) {
	pending := s.recognizer.RecognizeOnceAsync()
	select {
	case <-ctx.Done():
		s.inflight = pending
		return azurespeech.Outcome{}, ctx.Err()
	case outcome := <-pending:
		defer outcome.Close()
		if outcome.Error != nil {
			return azurespeech.Outcome{}, outcome.Error
		}
		return convert(outcome.Result)
	}
}

func convert(result *speech.SpeechRecognitionResult) (azurespeech.Outcome, error) {
	switch result.Reason {
	case common.RecognizedSpeech:
		return azurespeech.Outcome{Reason: azurespeech.ReasonRecognized, Text: result.Text}, nil
	case common.NoMatch:
		return azurespeech.Outcome{Reason: azurespeech.ReasonNoMatch}, nil
	case common.Canceled:
		details, err := speech.NewCancellationDetailsFromSpeechRecognitionResult(result)
		if err != nil {
			return azurespeech.Outcome{}, fmt.Errorf("read cancellation details: %w", err)
		}
		return azurespeech.Outcome{
			Reason:             azurespeech.ReasonCanceled,
			CancellationReason: cancellationReason(details.Reason),
			ErrorDetails:       details.ErrorDetails,
		}, nil
	default:
		return azurespeech.Outcome{}, fmt.Errorf("unexpected result reason %d", result.Reason)
	}
}

func cancellationReason(r common.CancellationReason) string {
	switch r {
	case common.Error:
		return azurespeech.CancellationError
	case common.EndOfStream:
		return azurespeech.CancellationEndOfStream
	case common.CancelledByUser:
		return azurespeech.CancellationCancelledByUser
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// Close releases native handles in reverse order of creation. With a
// recognition still in flight the release waits for its outcome.
func (s *session) Close() error {
	if pending := s.inflight; pending != nil {
		s.inflight = nil
		go func() {
			outcome := <-pending
			outcome.Close()
			s.release()
		}()
		return nil
	}
	s.release()
	return nil
}

func (s *session) release() {
	if s.recognizer != nil {
		s.recognizer.Close()
	}
	if s.speechCfg != nil {
		s.speechCfg.Close()
	}
	if s.audioCfg != nil {
		s.audioCfg.Close()
	}
	if s.stream != nil {
		s.stream.Close()
	}
}
