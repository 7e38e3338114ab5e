package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeMissingInput indicates the request carried no audio file.
	ErrCodeMissingInput ErrorCode = "MISSING_INPUT"
	// ErrCodeUnsupportedMediaType indicates the upload's MIME type is not allow-listed.
	ErrCodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	// ErrCodePayloadTooLarge indicates the request body exceeded the configured limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Storage errors
const (
	// ErrCodeStorageFailure indicates the upload could not be written or verified.
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
)

// Provider errors
const (
	// ErrCodeProviderError indicates the transcription provider failed.
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"
	// ErrCodeServiceUnavailable indicates the provider is not configured or reachable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Nothing is retried automatically; the flag only tells clients whether a
// resubmission can succeed.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeProviderError:      true,
	ErrCodeStorageFailure:     true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
