package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/micscribe/errors"
)

func TestValidatorRequired(t *testing.T) {
	if New().Required("function", "transcribe-audio").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("function", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("function", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorHTTPURL(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"https://abc.supabase.co", false},
		{"http://localhost:54321", false},
		{"ftp://host", true},
		{"not a url", true},
		{"https://", true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			if got := New().HTTPURL("url", tc.value).HasErrors(); got != tc.wantErr {
				t.Errorf("HTTPURL(%q) errors=%v, want %v", tc.value, got, tc.wantErr)
			}
		})
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	if New().OptionalUUID("session_id", "").HasErrors() {
		t.Error("empty should be accepted")
	}
	if New().OptionalUUID("session_id", uuid.NewString()).HasErrors() {
		t.Error("valid UUID should be accepted")
	}
	if !New().OptionalUUID("session_id", "nope").HasErrors() {
		t.Error("invalid UUID should be rejected")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"supabase", "whisper", "openai"}
	if New().OneOf("backend", "whisper", allowed).HasErrors() {
		t.Error("expected whisper to be accepted")
	}
	v := New().OneOf("backend", "vosk", allowed)
	if !v.HasErrors() {
		t.Fatal("expected vosk to be rejected")
	}
	if !strings.Contains(v.Errors()[0].Message, "supabase, whisper, openai") {
		t.Errorf("unexpected message %q", v.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil AppError without errors")
	}

	appErr := New().
		Required("url", "").
		Custom(false, "anon_key", "must be a JWT").
		Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "url: is required") || !strings.Contains(appErr.Message, "anon_key: must be a JWT") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestStructValidate(t *testing.T) {
	type supabaseConfig struct {
		URL      string `mapstructure:"url" validate:"required,url"`
		Function string `mapstructure:"function" validate:"required"`
	}
	type appConfig struct {
		Backend  string         `mapstructure:"backend" validate:"oneof=supabase whisper openai"`
		Supabase supabaseConfig `mapstructure:"supabase"`
	}

	if err := Validate(appConfig{Backend: "supabase", Supabase: supabaseConfig{URL: "https://x.supabase.co", Function: "transcribe-audio"}}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	err := Validate(appConfig{Backend: "vosk", Supabase: supabaseConfig{URL: "nope"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"backend: must be one of", "supabase.url: must be a valid URL", "supabase.function: is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT AppError, got %T", err)
	}
}

func TestStructValidateJSONNames(t *testing.T) {
	type body struct {
		AudioBlob string `json:"audioBlob" validate:"required,base64"`
	}
	err := Validate(body{AudioBlob: "***"})
	if err == nil || !strings.Contains(err.Error(), "audioBlob: must be base64 encoded") {
		t.Errorf("expected base64 error named after json tag, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("PermissionDelay"); got != "permission_delay" {
		t.Errorf("expected permission_delay, got %q", got)
	}
}
