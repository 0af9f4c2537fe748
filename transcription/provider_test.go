package transcription

import (
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/kbukum/micscribe/logger"
)

type fakeEngine struct {
	name string
	got  TranscriptionRequest
	data []byte
	resp *TranscriptionResponse
	err  error
}

func (e *fakeEngine) Name() string                     { return e.name }
func (e *fakeEngine) IsAvailable(context.Context) bool { return true }

func (e *fakeEngine) Transcribe(_ context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	e.got = req
	e.data, _ = io.ReadAll(req.Audio)
	return e.resp, e.err
}

func TestLocal(t *testing.T) {
	engine := &fakeEngine{name: "whisper", resp: &TranscriptionResponse{Text: "bonjour", Language: "fr"}}
	tr := Local(engine)

	resp, err := tr.Transcribe(context.Background(), Request{AudioBlob: "Ym9uam91cg==", MimeType: MimeMP4, Language: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "bonjour" {
		t.Errorf("expected bonjour, got %q", resp.Text)
	}
	if string(engine.data) != "bonjour" {
		t.Errorf("expected decoded audio, got %q", engine.data)
	}
	if engine.got.FileName != "audio.m4a" || engine.got.Language != "fr" {
		t.Errorf("unexpected engine request %+v", engine.got)
	}
	if tr.Name() != "whisper" || !tr.IsAvailable(context.Background()) {
		t.Error("Local must expose the engine identity")
	}

	engine.err = stderrors.New("model crashed")
	if _, err := tr.Transcribe(context.Background(), Request{}); err == nil {
		t.Error("expected engine error")
	}
}

func TestInstrument(t *testing.T) {
	ft := &fakeTranscriber{resp: &Response{Text: "ok"}}
	tr := Instrument(ft, logger.Nop(), nil, "micscribe")

	if tr.Name() != "fake" {
		t.Errorf("expected wrapped name, got %q", tr.Name())
	}
	resp, err := tr.Transcribe(context.Background(), Request{Language: "fr"})
	if err != nil || resp.Text != "ok" {
		t.Errorf("unexpected result %v, %v", resp, err)
	}
	if ft.callCount() != 1 {
		t.Errorf("expected one call through the chain, got %d", ft.callCount())
	}
}

func TestManagerPriority(t *testing.T) {
	m := NewManager(WithPriority("openai", "whisper"))
	m.Register("whisper", func(map[string]any) (Provider, error) { return &fakeEngine{name: "whisper"}, nil })
	if err := m.Initialize("whisper", nil); err != nil {
		t.Fatal(err)
	}
	p, err := m.Get(context.Background())
	if err != nil || p.Name() != "whisper" {
		t.Errorf("expected whisper fallback, got %v, %v", p, err)
	}
}
