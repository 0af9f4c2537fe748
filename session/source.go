package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/micscribe/transcription"
)

// Source starts audio captures.
type Source interface {
	Start(ctx context.Context) (Capture, error)
}

// Capture is a running recording. Stop ends it and returns the clip.
type Capture interface {
	Stop(ctx context.Context) (transcription.AudioPayload, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Capture, error)

func (f SourceFunc) Start(ctx context.Context) (Capture, error) { return f(ctx) }

// CaptureFunc adapts a function to Capture.
type CaptureFunc func(ctx context.Context) (transcription.AudioPayload, error)

func (f CaptureFunc) Stop(ctx context.Context) (transcription.AudioPayload, error) { return f(ctx) }

// FileSource replays a recorded file: every capture yields its content.
type FileSource struct {
	Path string
	// MimeType labels the clip; leave empty to rely on content sniffing.
	MimeType string
}

// Start checks that the file exists.
func (s FileSource) Start(_ context.Context) (Capture, error) {
	p, err := transcription.OpenFile(s.Path, s.MimeType)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return CaptureFunc(func(context.Context) (transcription.AudioPayload, error) { return p, nil }), nil
}

// BufferSource collects bytes written to it between Start and Stop, like a
// MediaRecorder collecting chunks.
type BufferSource struct {
	MimeType string

	mu     sync.Mutex
	chunks [][]byte
	active bool
}

// Write appends a chunk to the running capture. Chunks written while no
// capture runs are dropped.
func (b *BufferSource) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		b.chunks = append(b.chunks, append([]byte(nil), p...))
	}
	return len(p), nil
}

// Start begins collecting chunks.
func (b *BufferSource) Start(_ context.Context) (Capture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return nil, fmt.Errorf("session: capture already running")
	}
	b.active = true
	b.chunks = nil
	return CaptureFunc(b.stop), nil
}

func (b *BufferSource) stop(_ context.Context) (transcription.AudioPayload, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
	var size int
	for _, c := range b.chunks {
		size += len(c)
	}
	data := make([]byte, 0, size)
	for _, c := range b.chunks {
		data = append(data, c...)
	}
	b.chunks = nil
	return transcription.NewPayload(data, b.MimeType), nil
}
