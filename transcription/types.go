package transcription

import (
	"encoding/base64"
	"io"
	"strings"
)

// DefaultLanguage is the language sent with every request unless overridden.
const DefaultLanguage = "fr"

// Request is the body of the transcribe-audio call.
type Request struct {
	AudioBlob string `json:"audioBlob" validate:"required,base64"`
	MimeType  string `json:"mimeType" validate:"required,oneof=audio/wav audio/mp4 audio/mp3 audio/webm"`
	Language  string `json:"language" validate:"required,min=2,max=8"`
	IsMobile  bool   `json:"isMobile"`
	UserAgent string `json:"userAgent"`
}

// Audio decodes AudioBlob lazily.
func (r Request) Audio() io.Reader {
	return base64.NewDecoder(base64.StdEncoding, strings.NewReader(r.AudioBlob))
}

// Response is the result of the transcribe-audio call. Text is empty when
// nothing was transcribed; Error may then explain why.
type Response struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// TranscriptionRequest is the input of a speech-to-text engine.
type TranscriptionRequest struct {
	// Audio is read once.
	Audio io.Reader
	// FileName carries the container format to engines that infer it from
	// the extension.
	FileName string
	MimeType string
	Language string
	// Model overrides the engine's configured model.
	Model string
}

// TranscriptionResponse holds the result of an engine call.
type TranscriptionResponse struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	Language string  `json:"language,omitempty"`
}

// Segment is a time-aligned portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
