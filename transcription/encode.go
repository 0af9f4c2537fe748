package transcription

import (
	"encoding/base64"
	"io"
	"strings"
)

// EncodeBase64 streams r through a base64 encoder. sizeHint pre-sizes the
// output; pass 0 when unknown.
func EncodeBase64(r io.Reader, sizeHint int64) (string, error) {
	var sb strings.Builder
	if sizeHint > 0 {
		sb.Grow(base64.StdEncoding.EncodedLen(int(sizeHint)))
	}
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, r); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
