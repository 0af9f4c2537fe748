package errors

import (
	"fmt"
	"net/http"
)

// Default user-facing messages.
const (
	MsgPermissionDenied = "Accès au microphone refusé. Vérifiez les permissions de votre navigateur."
	MsgInsecureContext  = "L'enregistrement audio nécessite HTTPS. Veuillez utiliser un site sécurisé."
	MsgEmptyAudio       = "Aucun audio enregistré"
	MsgEncodingFailed   = "Erreur lors de la conversion de l'audio"
	MsgServerPrefix     = "Erreur du serveur: "
	MsgServerGeneric    = "Problème de connexion avec le serveur"
	MsgNoTranscript     = "Aucun texte n'a été transcrit"
	MsgFallback         = "Impossible de transcrire l'audio. Veuillez réessayer."
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the user-facing message.
	Message string `json:"message"`
	// Retryable indicates if the user can try again.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status used when the error crosses an HTTP boundary.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Recorder ---

// PermissionDenied is returned when the microphone probe is refused.
func PermissionDenied(cause error) *AppError {
	return &AppError{
		Code: ErrCodePermissionDenied, Message: MsgPermissionDenied,
		HTTPStatus: http.StatusForbidden, Cause: cause,
	}
}

// InsecureContext is returned when recording is attempted outside a secure context.
func InsecureContext() *AppError {
	return &AppError{
		Code: ErrCodeInsecureContext, Message: MsgInsecureContext,
		HTTPStatus: http.StatusForbidden,
	}
}

// ControlDisabled is returned when a disabled control is activated.
func ControlDisabled(reason string) *AppError {
	return &AppError{
		Code: ErrCodeControlDisabled, Message: "Control is disabled",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"reason": reason},
	}
}

// --- Transcription ---

// EmptyAudio is returned when the captured payload has no bytes.
func EmptyAudio() *AppError {
	return &AppError{
		Code: ErrCodeEmptyAudio, Message: MsgEmptyAudio,
		HTTPStatus: http.StatusBadRequest,
	}
}

// EncodingFailed is returned when the payload cannot be read or encoded.
func EncodingFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeEncodingFailed, Message: MsgEncodingFailed,
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// ExternalServiceError is returned when the transcription endpoint call fails.
// The cause is kept for the logs; the message stays generic.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: MsgServerPrefix + MsgServerGeneric,
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// NoTranscript is returned when the endpoint answers without text.
// A message reported by the endpoint is surfaced as is.
func NoTranscript(reported string) *AppError {
	msg := reported
	if msg == "" {
		msg = MsgNoTranscript
	}
	return &AppError{
		Code: ErrCodeNoTranscript, Message: msg,
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: true,
	}
}

// InProgress is returned when a transcription is already running.
func InProgress() *AppError {
	return &AppError{
		Code: ErrCodeInProgress, Message: "Une transcription est déjà en cours",
		HTTPStatus: http.StatusConflict, Retryable: true,
	}
}

// --- Generic ---

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates a new AppError for rejected credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
