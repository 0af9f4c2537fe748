package transcription

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Normalized MIME types accepted by the transcribe-audio function.
const (
	MimeWAV  = "audio/wav"
	MimeMP4  = "audio/mp4"
	MimeMP3  = "audio/mp3"
	MimeWebM = "audio/webm"
)

// NormalizeMIME maps a recorder label such as "audio/webm;codecs=opus" or
// "audio/x-m4a" onto one of the four accepted types. Unknown and empty
// labels become audio/webm.
func NormalizeMIME(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "audio/wav"), strings.Contains(l, "audio/x-wav"):
		return MimeWAV
	case strings.Contains(l, "audio/mp4"), strings.Contains(l, "audio/x-m4a"):
		return MimeMP4
	case strings.Contains(l, "audio/mpeg"), strings.Contains(l, "audio/mp3"):
		return MimeMP3
	default:
		return MimeWebM
	}
}

// SniffMIME detects the container of an audio clip from its first bytes.
// Containers detected as video (webm, mp4) are reported as audio, since a
// recorder only ever produces audio tracks.
func SniffMIME(head []byte) string {
	detected := mimetype.Detect(head).String()
	if rest, ok := strings.CutPrefix(detected, "video/"); ok {
		return "audio/" + rest
	}
	return detected
}

// ExtensionFor returns the file extension for a normalized MIME type.
func ExtensionFor(mimeType string) string {
	switch NormalizeMIME(mimeType) {
	case MimeWAV:
		return ".wav"
	case MimeMP4:
		return ".m4a"
	case MimeMP3:
		return ".mp3"
	default:
		return ".webm"
	}
}
