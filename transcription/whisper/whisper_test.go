package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/micscribe/transcription"
)

func TestTranscribeMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if r.FormValue("model") != "small" || r.FormValue("language") != "fr" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		f, hdr, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "RIFFdata" || hdr.Filename != "audio.wav" {
			t.Errorf("unexpected file %q (%s)", data, hdr.Filename)
		}
		if hdr.Header.Get("Content-Type") != "audio/wav" {
			t.Errorf("unexpected part content type %q", hdr.Header.Get("Content-Type"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"bonjour","language":"fr","segments":[{"text":"bonjour","start":0,"end":1.5}]}`))
	}))
	defer server.Close()

	p, err := NewProvider(Config{URL: server.URL, Model: "small"})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{
		Audio:    strings.NewReader("RIFFdata"),
		MimeType: "audio/x-wav",
		Language: "fr",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "bonjour" || resp.Language != "fr" || resp.Duration != 1.5 || len(resp.Segments) != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p, _ := NewProvider(Config{URL: server.URL})
	_, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: strings.NewReader("x")})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("expected 503 error, got %v", err)
	}
	if _, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{}); err == nil {
		t.Error("expected error without audio")
	}
}

func TestIsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	p, _ := NewProvider(Config{URL: server.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected sidecar to be available")
	}
	server.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("expected closed sidecar to be unavailable")
	}
}

func TestFactoryDefaults(t *testing.T) {
	prov, err := Factory()(map[string]any{"timeout": "10s"})
	if err != nil {
		t.Fatal(err)
	}
	p := prov.(*Provider)
	if p.cfg.URL != defaultWhisperURL || p.cfg.Model != defaultWhisperModel || p.cfg.Timeout.Seconds() != 10 {
		t.Errorf("unexpected config %+v", p.cfg)
	}
	if p.Name() != ProviderName {
		t.Errorf("unexpected name %q", p.Name())
	}
}
