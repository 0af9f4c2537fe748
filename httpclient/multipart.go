package httpclient

import (
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody is a multipart/form-data request body. Pass it as
// Request.Body; the parts are streamed so large audio files are not buffered.
type MultipartBody struct {
	// Fields are simple key-value form fields, written in order.
	Fields []FormField
	// Files are file upload parts.
	Files []FileField
}

// FormField is a plain form value.
type FormField struct {
	Name  string
	Value string
}

// FileField is a file part in a multipart request.
type FileField struct {
	// FieldName is the form field name, e.g. "file" or "audio".
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is used when Reader is nil.
	Data []byte
	// Reader streams the content.
	Reader io.Reader
}

// AddField appends a form field and returns the body for chaining.
func (m *MultipartBody) AddField(name, value string) *MultipartBody {
	m.Fields = append(m.Fields, FormField{Name: name, Value: value})
	return m
}

// stream returns a reader producing the encoded body and its content type.
// Encoding runs in a goroutine; a write error surfaces on the reader.
func (m *MultipartBody) stream() (io.Reader, string) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(m.writeTo(w))
	}()
	return pr, w.FormDataContentType()
}

func (m *MultipartBody) writeTo(w *multipart.Writer) error {
	for _, f := range m.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return err
		}
	}
	for _, f := range m.Files {
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
		header.Set("Content-Type", ct)
		part, err := w.CreatePart(header)
		if err != nil {
			return err
		}
		switch {
		case f.Reader != nil:
			if _, err := io.Copy(part, f.Reader); err != nil {
				return err
			}
		case f.Data != nil:
			if _, err := part.Write(f.Data); err != nil {
				return err
			}
		}
	}
	return w.Close()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
