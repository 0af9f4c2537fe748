package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Stream is an open capture stream. Stop releases the device; it is safe to
// call more than once.
type Stream interface {
	Stop()
}

// Microphone grants or refuses access to an audio input.
type Microphone interface {
	Open(ctx context.Context) (Stream, error)
}

// MicrophoneFunc adapts a function to Microphone.
type MicrophoneFunc func(ctx context.Context) (Stream, error)

func (f MicrophoneFunc) Open(ctx context.Context) (Stream, error) { return f(ctx) }

// StreamFunc adapts a function to Stream.
type StreamFunc func()

func (f StreamFunc) Stop() { f() }

// FileMicrophone stands in for a capture device on hosts without one: access
// is granted when the file at Path can be opened for reading.
type FileMicrophone struct {
	Path string
}

// Open opens and returns the file as a stream.
func (m FileMicrophone) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(m.Path)
	if err != nil {
		return nil, fmt.Errorf("platform: open microphone %s: %w", m.Path, err)
	}
	return &fileStream{f: f}, nil
}

type fileStream struct {
	once sync.Once
	f    io.Closer
}

func (s *fileStream) Stop() {
	s.once.Do(func() { _ = s.f.Close() })
}
