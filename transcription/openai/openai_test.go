package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/micscribe/transcription"
)

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected auth %q", r.Header.Get("Authorization"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if r.FormValue("model") != "whisper-1" || r.FormValue("language") != "fr" || r.FormValue("response_format") != "verbose_json" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "webm-bytes" || !strings.HasSuffix(hdr.Filename, ".webm") {
			t.Errorf("unexpected upload %q (%s)", data, hdr.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task":"transcribe","language":"french","duration":2.5,"text":"bonjour","segments":[{"id":0,"start":0,"end":2.5,"text":"bonjour"}]}`))
	}))
	defer server.Close()

	p := NewProvider(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1"})
	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		Audio:    strings.NewReader("webm-bytes"),
		MimeType: "audio/webm",
		Language: "fr",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "bonjour" || resp.Duration != 2.5 || len(resp.Segments) != 1 || resp.Segments[0].End != 2.5 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTranscribeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p := NewProvider(Config{APIKey: "bad", BaseURL: server.URL + "/v1"})
	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: strings.NewReader("x")})
	if err == nil || !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("expected rejected error, got %v", err)
	}
}

func TestFactory(t *testing.T) {
	if _, err := Factory()(map[string]any{}); err == nil {
		t.Error("expected api_key error")
	}
	prov, err := Factory()(map[string]any{"api_key": "sk", "model": "gpt-4o-transcribe"})
	if err != nil {
		t.Fatal(err)
	}
	if !prov.IsAvailable(context.Background()) || prov.Name() != ProviderName {
		t.Error("expected available openai provider")
	}
	if prov.(*Provider).cfg.Model != "gpt-4o-transcribe" {
		t.Errorf("unexpected model %q", prov.(*Provider).cfg.Model)
	}
}
