package transcription

import (
	"bufio"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/kbukum/micscribe/errors"
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/notify"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/platform"
)

// User-visible notification text.
const (
	TitleSuccess       = "Transcription réussie"
	DescriptionSuccess = "Votre réponse vocale a été transcrite avec succès."
	TitleFailure       = "Erreur de transcription"
)

// sniffLen matches the default read limit of mimetype.
const sniffLen = 3072

// ResultSink receives the transcribed text.
type ResultSink interface {
	SetAnswer(text string)
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(text string)

func (f SinkFunc) SetAnswer(text string) { f(text) }

// StateListener is told when a transcription starts and ends.
type StateListener interface {
	SetTranscribing(transcribing bool)
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLanguage overrides the language code sent with each request.
func WithLanguage(lang string) HandlerOption {
	return func(h *Handler) { h.language = lang }
}

// WithLogger sets the handler logger.
func WithLogger(log *logger.Logger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// WithMetrics records transcription metrics.
func WithMetrics(m *observability.Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithStateListener registers a listener for the transcribing flag.
func WithStateListener(l StateListener) HandlerOption {
	return func(h *Handler) { h.listeners = append(h.listeners, l) }
}

// WithContentSniffing detects the container from the audio bytes when the
// payload carries no MIME label.
func WithContentSniffing(enabled bool) HandlerOption {
	return func(h *Handler) { h.sniff = enabled }
}

// Handler turns a captured clip into text through a Transcriber. It runs at
// most one transcription at a time.
type Handler struct {
	transcriber Transcriber
	caps        platform.Capabilities
	sink        ResultSink
	notifier    notify.Notifier

	language  string
	log       *logger.Logger
	metrics   *observability.Metrics
	listeners []StateListener
	sniff     bool

	inFlight atomic.Bool
}

// NewHandler creates a handler. The notifier may be nil.
func NewHandler(t Transcriber, caps platform.Capabilities, sink ResultSink, n notify.Notifier, opts ...HandlerOption) *Handler {
	h := &Handler{
		transcriber: t,
		caps:        caps,
		sink:        sink,
		notifier:    n,
		language:    DefaultLanguage,
		log:         logger.Get("transcription"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Transcribing reports whether a transcription is running.
func (h *Handler) Transcribing() bool {
	return h.inFlight.Load()
}

// Handle transcribes payload and delivers the text to the sink. Failures are
// notified to the user and returned as *errors.AppError. A call made while
// another is running returns TRANSCRIPTION_IN_PROGRESS and changes nothing.
func (h *Handler) Handle(ctx context.Context, payload AudioPayload) error {
	if !h.inFlight.CompareAndSwap(false, true) {
		return errors.InProgress()
	}
	h.setTranscribing(true)
	defer func() {
		h.inFlight.Store(false)
		h.setTranscribing(false)
	}()

	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrProvider, h.transcriber.Name())

	h.metrics.TranscriptionStarted(ctx)
	start := time.Now()

	res := h.transcribe(ctx, payload)
	log := h.log.WithContext(ctx)
	fields := logger.Fields(
		logger.FieldProvider, h.transcriber.Name(),
		logger.FieldMimeType, res.mimeType,
		logger.FieldBytes, res.size,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)

	if res.err != nil {
		observability.SetSpanError(ctx, res.err)
		appErr := errors.Wrap(res.err)
		h.metrics.TranscriptionFinished(ctx, string(appErr.Code), res.mimeType, res.size, time.Since(start))
		fields["code"] = string(appErr.Code)
		log.Error("transcription failed", logger.MergeWithError(fields, appErr))
		h.notify(ctx, notify.Notification{
			Title:       TitleFailure,
			Description: errors.UserMessage(appErr),
			Variant:     notify.VariantDestructive,
		})
		return appErr
	}

	h.metrics.TranscriptionFinished(ctx, observability.StatusOK, res.mimeType, res.size, time.Since(start))
	log.Info("transcription succeeded", fields)
	h.sink.SetAnswer(res.text)
	h.notify(ctx, notify.Notification{
		Title:       TitleSuccess,
		Description: DescriptionSuccess,
	})
	return nil
}

type result struct {
	text     string
	mimeType string
	size     int64
	err      error
}

func (h *Handler) transcribe(ctx context.Context, payload AudioPayload) result {
	if payload == nil || payload.Size() == 0 {
		return result{err: errors.EmptyAudio()}
	}
	res := result{size: payload.Size()}
	observability.SetSpanAttribute(ctx, observability.AttrAudioBytes, res.size)

	rc, err := payload.Open()
	if err != nil {
		res.err = errors.EncodingFailed(err)
		return res
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	label := payload.MimeType()
	if h.sniff && label == "" {
		br := bufio.NewReaderSize(rc, sniffLen)
		head, _ := br.Peek(sniffLen)
		label = SniffMIME(head)
		r = br
	}
	res.mimeType = NormalizeMIME(label)
	observability.SetSpanAttribute(ctx, observability.AttrMimeType, res.mimeType)

	blob, err := EncodeBase64(r, res.size)
	if err != nil {
		res.err = errors.EncodingFailed(err)
		return res
	}

	var ua string
	var mobile bool
	if h.caps != nil {
		ua = h.caps.UserAgent()
		mobile = h.caps.IsMobile()
	}
	observability.SetSpanAttribute(ctx, observability.AttrIsMobile, mobile)

	resp, err := h.transcriber.Transcribe(ctx, Request{
		AudioBlob: blob,
		MimeType:  res.mimeType,
		Language:  h.language,
		IsMobile:  mobile,
		UserAgent: ua,
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			res.err = err
		} else {
			res.err = errors.ExternalServiceError(h.transcriber.Name(), err)
		}
		return res
	}
	if resp == nil || resp.Text == "" {
		reported := ""
		if resp != nil {
			reported = resp.Error
		}
		res.err = errors.NoTranscript(reported)
		return res
	}
	res.text = resp.Text
	return res
}

func (h *Handler) setTranscribing(v bool) {
	for _, l := range h.listeners {
		l.SetTranscribing(v)
	}
}

func (h *Handler) notify(ctx context.Context, n notify.Notification) {
	if h.notifier != nil {
		h.notifier.Notify(ctx, n)
	}
}
