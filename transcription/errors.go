package transcription

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/scribe/errors"
)

// Sub-causes of a provider failure.
var (
	// ErrNoSpeechDetected means the audio was processed but contained no
	// recognizable speech.
	ErrNoSpeechDetected = errors.New("speech could not be recognized")
	// ErrRecognitionCanceled means the service aborted recognition.
	ErrRecognitionCanceled = errors.New("recognition canceled")
	// ErrTransport means the service could not be reached or rejected the call.
	ErrTransport = errors.New("transport error")
)

// Cause detail values attached by Classify.
const (
	CauseNoSpeechDetected    = "no_speech_detected"
	CauseRecognitionCanceled = "recognition_canceled"
	CauseTransport           = "transport_error"
	CauseUnknown             = "unknown"
)

// CanceledError reports a recognition the service canceled.
type CanceledError struct {
	Reason  string
	Details string
}

func (e *CanceledError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("CANCELED: %s: %s", e.Reason, e.Details)
	}
	return "CANCELED: " + e.Reason
}

// Is matches ErrRecognitionCanceled.
func (e *CanceledError) Is(target error) bool { return target == ErrRecognitionCanceled }

// TransportError reports a failed call to the backend service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Transport wraps err as a TransportError for operation op.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}

// Classify maps a provider failure to a PROVIDER_ERROR AppError carrying a
// "cause" detail.
func Classify(providerName string, err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeProviderError {
		return appErr
	}

	return apperrors.ProviderError(providerName, message(err), err).WithDetail("cause", Cause(err))
}

// Cause returns the cause detail value for a provider failure.
func Cause(err error) string {
	switch {
	case errors.Is(err, ErrNoSpeechDetected):
		return CauseNoSpeechDetected
	case errors.Is(err, ErrRecognitionCanceled):
		return CauseRecognitionCanceled
	case errors.Is(err, ErrTransport):
		return CauseTransport
	default:
		return CauseUnknown
	}
}

func message(err error) string {
	if errors.Is(err, ErrNoSpeechDetected) {
		return "Speech could not be recognized."
	}
	var ce *CanceledError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}
