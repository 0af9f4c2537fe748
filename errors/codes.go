package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Recorder errors
const (
	// ErrCodePermissionDenied indicates microphone access was refused.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeInsecureContext indicates the page is not served over encrypted transport.
	ErrCodeInsecureContext ErrorCode = "INSECURE_CONTEXT"
	// ErrCodeControlDisabled indicates the control was activated while disabled.
	ErrCodeControlDisabled ErrorCode = "CONTROL_DISABLED"
)

// Transcription errors
const (
	// ErrCodeEmptyAudio indicates no audio was captured.
	ErrCodeEmptyAudio ErrorCode = "EMPTY_AUDIO"
	// ErrCodeEncodingFailed indicates the payload could not be converted to text.
	ErrCodeEncodingFailed ErrorCode = "ENCODING_FAILED"
	// ErrCodeExternalService indicates the transcription endpoint failed or was unreachable.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeNoTranscript indicates the endpoint answered without any text.
	ErrCodeNoTranscript ErrorCode = "NO_TRANSCRIPT"
	// ErrCodeInProgress indicates a transcription is already running.
	ErrCodeInProgress ErrorCode = "TRANSCRIPTION_IN_PROGRESS"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeExternalService: true,
	ErrCodeNoTranscript:    true,
	ErrCodeInProgress:      true,
}

// IsRetryableCode reports whether the user may simply try again.
// Nothing in this module retries on its own.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
