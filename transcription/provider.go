package transcription

import (
	"context"

	"github.com/kbukum/micscribe/provider"
)

// Provider is a speech-to-text engine.
type Provider interface {
	provider.Provider

	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
}

// Transcriber performs the remote transcribe-audio call.
type Transcriber interface {
	provider.Provider

	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// Endpoint turns a RequestResponse into a Transcriber.
func Endpoint(rr provider.RequestResponse[Request, *Response]) Transcriber {
	return endpoint{rr}
}

type endpoint struct {
	provider.RequestResponse[Request, *Response]
}

func (e endpoint) Transcribe(ctx context.Context, req Request) (*Response, error) {
	return e.Execute(ctx, req)
}

// requestResponse exposes a Transcriber to the provider middleware.
type requestResponse struct {
	Transcriber
}

func (r requestResponse) Execute(ctx context.Context, req Request) (*Response, error) {
	return r.Transcribe(ctx, req)
}

// Local answers transcribe-audio requests with an engine in process.
func Local(engine Provider) Transcriber {
	return &local{engine: engine}
}

type local struct {
	engine Provider
}

func (l *local) Name() string                         { return l.engine.Name() }
func (l *local) IsAvailable(ctx context.Context) bool { return l.engine.IsAvailable(ctx) }

// Close closes the engine when it holds resources.
func (l *local) Close(ctx context.Context) error {
	if c, ok := l.engine.(provider.Closeable); ok {
		return c.Close(ctx)
	}
	return nil
}

func (l *local) Transcribe(ctx context.Context, req Request) (*Response, error) {
	resp, err := l.engine.Transcribe(ctx, TranscriptionRequest{
		Audio:    req.Audio(),
		FileName: "audio" + ExtensionFor(req.MimeType),
		MimeType: req.MimeType,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Text: resp.Text}, nil
}
