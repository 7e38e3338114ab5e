package azurespeech

import "context"

// Reason is the terminal event of a single-shot recognition.
type Reason int

const (
	// ReasonRecognized means speech was recognized and Text is set.
	ReasonRecognized Reason = iota + 1
	// ReasonNoMatch means the audio held no recognizable speech.
	ReasonNoMatch
	// ReasonCanceled means the service canceled recognition.
	ReasonCanceled
)

// Cancellation reasons reported by the service.
const (
	CancellationError           = "Error"
	CancellationEndOfStream     = "EndOfStream"
	CancellationCancelledByUser = "CancelledByUser"
)

// Outcome is the single result of RecognizeOnce.
type Outcome struct {
	Reason Reason
	Text   string
	// CancellationReason and ErrorDetails are set when Reason is ReasonCanceled.
	CancellationReason string
	ErrorDetails       string
}

// SessionConfig carries what a recognizer needs to connect.
type SessionConfig struct {
	Key      string
	Region   string
	Language string
}

// Session is one recognizer fed by a push audio stream.
type Session interface {
	// Write pushes a chunk of audio into the stream.
	Write(p []byte) error
	// CloseStream signals the end of audio.
	CloseStream()
	// RecognizeOnce waits for the single terminal recognition event.
	RecognizeOnce(ctx context.Context) (Outcome, error)
	// Close releases the recognizer and its stream.
	Close() error
}

// Opener creates a Session.
type Opener func(ctx context.Context, cfg SessionConfig) (Session, error)
