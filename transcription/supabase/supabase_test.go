package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/micscribe/errors"
	"github.com/kbukum/micscribe/httpclient"
	"github.com/kbukum/micscribe/transcription"
	"github.com/kbukum/micscribe/version"
)

func signKey(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Config{URL: url, AnonKey: "anon-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestTranscribeSendsInvocation(t *testing.T) {
	var got transcription.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/functions/v1/transcribe-audio" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer anon-key" || r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing credentials: %v", r.Header)
		}
		if r.Header.Get("x-client-info") != version.ClientInfo() {
			t.Errorf("unexpected x-client-info %q", r.Header.Get("x-client-info"))
		}
		if _, err := uuid.Parse(r.Header.Get("x-request-id")); err != nil {
			t.Errorf("expected UUID request id, got %q", r.Header.Get("x-request-id"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"bonjour"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL+"/")
	resp, err := c.Transcribe(context.Background(), transcription.Request{
		AudioBlob: "Ym9uam91cg==", MimeType: "audio/webm", Language: "fr", IsMobile: true, UserAgent: "ua",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "bonjour" {
		t.Errorf("expected bonjour, got %q", resp.Text)
	}
	if got.AudioBlob != "Ym9uam91cg==" || got.MimeType != "audio/webm" || got.Language != "fr" || !got.IsMobile || got.UserAgent != "ua" {
		t.Errorf("unexpected body %+v", got)
	}
}

func TestTranscribeResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		relay       bool
		body        string
		wantKind    ErrorKind
		wantResp    transcription.Response
	}{
		{name: "error field", status: 200, contentType: "application/json", body: `{"error":"Audio trop court"}`, wantResp: transcription.Response{Error: "Audio trop court"}},
		{name: "empty object", status: 200, contentType: "application/json; charset=utf-8", body: `{}`},
		{name: "plain text", status: 200, contentType: "text/plain", body: "bonjour"},
		{name: "non-2xx", status: 500, contentType: "application/json", body: `{"error":"boom"}`, wantKind: KindHTTP},
		{name: "relay", status: 502, relay: true, body: "relay down", wantKind: KindRelay},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tc.contentType != "" {
					w.Header().Set("Content-Type", tc.contentType)
				}
				if tc.relay {
					w.Header().Set("x-relay-error", "true")
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			resp, err := newTestClient(t, server.URL).Transcribe(context.Background(), transcription.Request{})
			if tc.wantKind != "" {
				fe, ok := err.(*FunctionsError)
				if !ok || fe.Kind != tc.wantKind {
					t.Fatalf("expected %s, got %v", tc.wantKind, err)
				}
				if fe.StatusCode != tc.status || string(fe.Body) != tc.body {
					t.Errorf("unexpected error details %+v", fe)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *resp != tc.wantResp {
				t.Errorf("expected %+v, got %+v", tc.wantResp, *resp)
			}
		})
	}
}

func TestTranscribeFetchError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Transcribe(context.Background(), transcription.Request{})
	fe, ok := err.(*FunctionsError)
	if !ok || fe.Kind != KindFetch {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if fe.Message() != "Failed to send a request to the Edge Function" {
		t.Errorf("unexpected message %q", fe.Message())
	}
	if _, ok := httpclient.AsError(err); !ok {
		t.Error("expected the transport error in the chain")
	}
}

func TestInspectKey(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		key     string
		wantJWT bool
		wantErr bool
	}{
		{"publishable key", "sb_publishable_abc", false, false},
		{"anon jwt", signKey(t, jwt.MapClaims{"role": "anon", "ref": "xyz", "exp": now.Add(time.Hour).Unix()}), true, false},
		{"service role", signKey(t, jwt.MapClaims{"role": "service_role"}), true, true},
		{"expired", signKey(t, jwt.MapClaims{"role": "anon", "exp": now.Add(-time.Hour).Unix()}), true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := InspectKey(tc.key, now)
			if info.IsJWT != tc.wantJWT {
				t.Errorf("IsJWT = %v, want %v", info.IsJWT, tc.wantJWT)
			}
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.HasCode(err, errors.ErrCodeUnauthorized) {
				t.Errorf("expected UNAUTHORIZED, got %v", err)
			}
		})
	}
}

func TestInitRejectsServiceRoleKey(t *testing.T) {
	c, err := New(Config{URL: "https://x.supabase.co", AnonKey: signKey(t, jwt.MapClaims{"role": "service_role"})})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Init(context.Background()); err == nil {
		t.Error("expected Init to reject a service_role key")
	}
}

func TestConfig(t *testing.T) {
	if _, err := New(Config{AnonKey: "k"}); err == nil || !strings.Contains(err.Error(), "url") {
		t.Errorf("expected url validation error, got %v", err)
	}

	tr, err := Factory()(map[string]any{"url": "https://x.supabase.co", "anon_key": "k", "timeout": "5s"})
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	c := tr.(*Client)
	if c.cfg.Function != DefaultFunction || c.cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected config %+v", c.cfg)
	}
	if c.adapter.Config().Timeout != 5*time.Second {
		t.Errorf("expected adapter timeout 5s, got %v", c.adapter.Config().Timeout)
	}
	if c.cfg.FunctionsURL() != "https://x.supabase.co/functions/v1" {
		t.Errorf("unexpected functions url %q", c.cfg.FunctionsURL())
	}
	if !c.IsAvailable(context.Background()) || c.Name() != ProviderName {
		t.Error("expected available supabase client")
	}
}

func TestNoDefaultTimeout(t *testing.T) {
	c := newTestClient(t, "https://x.supabase.co")
	if c.cfg.Timeout != 0 || c.adapter.Config().Timeout != 0 {
		t.Errorf("expected no timeout on the function call, got cfg=%v adapter=%v", c.cfg.Timeout, c.adapter.Config().Timeout)
	}
	if _, err := New(Config{URL: "https://x.supabase.co", AnonKey: "k", Timeout: -time.Second}); err == nil {
		t.Error("expected negative timeout to be rejected")
	}
}
