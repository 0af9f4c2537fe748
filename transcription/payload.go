package transcription

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// AudioPayload is a captured clip with its MIME type label.
type AudioPayload interface {
	Size() int64
	MimeType() string
	Open() (io.ReadCloser, error)
}

// NewPayload wraps an in-memory clip.
func NewPayload(data []byte, mimeType string) AudioPayload {
	return bytesPayload{data: data, mime: mimeType}
}

type bytesPayload struct {
	data []byte
	mime string
}

func (p bytesPayload) Size() int64      { return int64(len(p.data)) }
func (p bytesPayload) MimeType() string { return p.mime }
func (p bytesPayload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(p.data)), nil
}

// OpenFile returns a payload reading the file at path. The size is taken
// when OpenFile is called.
func OpenFile(path, mimeType string) (AudioPayload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("transcription: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("transcription: %s is a directory", path)
	}
	return filePayload{path: path, size: info.Size(), mime: mimeType}, nil
}

type filePayload struct {
	path string
	size int64
	mime string
}

func (p filePayload) Size() int64      { return p.size }
func (p filePayload) MimeType() string { return p.mime }
func (p filePayload) Open() (io.ReadCloser, error) {
	return os.Open(p.path)
}
