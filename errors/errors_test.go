package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeExternalService, "down", http.StatusBadGateway)
	if !err.Retryable {
		t.Error("EXTERNAL_SERVICE_ERROR should be retryable")
	}

	err = New(ErrCodeEmptyAudio, "empty", http.StatusBadRequest)
	if err.Retryable {
		t.Error("EMPTY_AUDIO should not be retryable")
	}
}

func TestAppError_PermissionDenied(t *testing.T) {
	cause := fmt.Errorf("NotAllowedError")
	err := PermissionDenied(cause)
	if err.Code != ErrCodePermissionDenied {
		t.Errorf("expected PERMISSION_DENIED, got %s", err.Code)
	}
	if err.Message != MsgPermissionDenied {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Unwrap() != cause {
		t.Error("expected cause to be kept")
	}
}

func TestAppError_ExternalServiceError_HidesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := ExternalServiceError("supabase", cause)
	if strings.Contains(err.Message, "connection refused") {
		t.Errorf("message must stay generic, got %q", err.Message)
	}
	if err.Message != "Erreur du serveur: Problème de connexion avec le serveur" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should carry the cause, got %q", err.Error())
	}
	if err.Details["service"] != "supabase" {
		t.Errorf("expected service=supabase, got %v", err.Details["service"])
	}
}

func TestAppError_NoTranscript(t *testing.T) {
	if got := NoTranscript("").Message; got != "Aucun texte n'a été transcrit" {
		t.Errorf("expected default message, got %q", got)
	}
	if got := NoTranscript("quota exceeded").Message; got != "quota exceeded" {
		t.Errorf("expected reported message, got %q", got)
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := ControlDisabled("transcribing").WithDetails(map[string]any{
		"status": "idle",
	})
	if err.Details["status"] != "idle" {
		t.Error("expected status=idle in details")
	}
	if err.Details["reason"] != "transcribing" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"PermissionDenied", PermissionDenied(nil), ErrCodePermissionDenied, http.StatusForbidden, false},
		{"InsecureContext", InsecureContext(), ErrCodeInsecureContext, http.StatusForbidden, false},
		{"ControlDisabled", ControlDisabled("x"), ErrCodeControlDisabled, http.StatusConflict, false},
		{"EmptyAudio", EmptyAudio(), ErrCodeEmptyAudio, http.StatusBadRequest, false},
		{"EncodingFailed", EncodingFailed(nil), ErrCodeEncodingFailed, http.StatusBadRequest, false},
		{"ExternalServiceError", ExternalServiceError("fn", nil), ErrCodeExternalService, http.StatusBadGateway, true},
		{"NoTranscript", NoTranscript(""), ErrCodeNoTranscript, http.StatusUnprocessableEntity, true},
		{"InProgress", InProgress(), ErrCodeInProgress, http.StatusConflict, true},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestAppError_ToResponse(t *testing.T) {
	resp := EmptyAudio().ToResponse()
	if resp.Error.Code != ErrCodeEmptyAudio {
		t.Errorf("expected EMPTY_AUDIO in response, got %s", resp.Error.Code)
	}
	if resp.Error.Message != MsgEmptyAudio {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", EmptyAudio())

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeEmptyAudio {
		t.Errorf("expected EMPTY_AUDIO, got %s", got.Code)
	}
	if !HasCode(wrapped, ErrCodeEmptyAudio) {
		t.Error("expected HasCode to match")
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NoTranscript("")
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if !stderrors.Is(got, plain) {
		t.Error("expected cause to be the original error")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(EmptyAudio()); got != MsgEmptyAudio {
		t.Errorf("expected %q, got %q", MsgEmptyAudio, got)
	}
	if got := UserMessage(fmt.Errorf("boom")); got != MsgFallback {
		t.Errorf("expected fallback, got %q", got)
	}
	if got := UserMessage(&AppError{Code: ErrCodeInternal}); got != MsgFallback {
		t.Errorf("expected fallback for empty message, got %q", got)
	}
}
