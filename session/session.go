// Package session wires a recorder Control to a transcription Handler: it
// owns the recording status, captures audio from a Source and transcribes
// each clip when recording stops.
package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/micscribe/errors"
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/notify"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/platform"
	"github.com/kbukum/micscribe/recorder"
	"github.com/kbukum/micscribe/transcription"
)

// Config configures a Session.
type Config struct {
	Recorder recorder.Config `mapstructure:"recorder"`
	// Language overrides the transcription language.
	Language string `mapstructure:"language"`
	// ContentSniffing detects unlabeled clips from their bytes.
	ContentSniffing bool `mapstructure:"content_sniffing"`
}

// Deps are the collaborators of a Session. Renderer, Notifier, Metrics
// and Logger are optional.
type Deps struct {
	Source       Source
	Transcriber  transcription.Transcriber
	Capabilities platform.Capabilities
	Microphone   platform.Microphone
	Sink         transcription.ResultSink
	Notifier     notify.Notifier
	Renderer     recorder.Renderer
	Metrics      *observability.Metrics
	Logger       *logger.Logger
}

// Session is one question's recording lifecycle.
type Session struct {
	source  Source
	control *recorder.Control
	handler *transcription.Handler
	log     *logger.Logger

	mu      sync.Mutex
	id      string
	capture Capture
	// busy is set from the stop press until the control is idle again.
	busy    bool
	pending sync.WaitGroup
	lastErr error
}

// New builds the control and the handler around a session.
func New(cfg Config, deps Deps) (*Session, error) {
	var missing []error
	if deps.Source == nil {
		missing = append(missing, stderrors.New("source"))
	}
	if deps.Transcriber == nil {
		missing = append(missing, stderrors.New("transcriber"))
	}
	if deps.Capabilities == nil {
		missing = append(missing, stderrors.New("capabilities"))
	}
	if deps.Microphone == nil {
		missing = append(missing, stderrors.New("microphone"))
	}
	if deps.Sink == nil {
		missing = append(missing, stderrors.New("sink"))
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("session: missing dependencies: %w", stderrors.Join(missing...))
	}

	log := deps.Logger
	if log == nil {
		log = logger.Get("session")
	}

	s := &Session{source: deps.Source, log: log}

	recOpts := []recorder.Option{recorder.WithLogger(log.WithComponent("recorder")), recorder.WithMetrics(deps.Metrics)}
	if deps.Renderer != nil {
		recOpts = append(recOpts, recorder.WithRenderer(deps.Renderer))
	}
	s.control = recorder.New(cfg.Recorder, deps.Capabilities, deps.Microphone, s, recOpts...)

	hOpts := []transcription.HandlerOption{
		transcription.WithLogger(log.WithComponent("transcription")),
		transcription.WithMetrics(deps.Metrics),
		transcription.WithContentSniffing(cfg.ContentSniffing),
	}
	if cfg.Language != "" {
		hOpts = append(hOpts, transcription.WithLanguage(cfg.Language))
	}
	s.handler = transcription.NewHandler(deps.Transcriber, deps.Capabilities, deps.Sink, deps.Notifier, hOpts...)
	return s, nil
}

// Control returns the recorder control driven by the session.
func (s *Session) Control() *recorder.Control { return s.control }

// Handler returns the transcription handler.
func (s *Session) Handler() *transcription.Handler { return s.handler }

// ID returns the ID of the current or last recording.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Click forwards to the control.
func (s *Session) Click(ctx context.Context) error {
	return s.control.Click(ctx)
}

// StartRecording starts a capture and moves the status to recording. It
// fails while the previous clip is still being transcribed.
func (s *Session) StartRecording(ctx context.Context) error {
	status := s.control.View().Status

	s.mu.Lock()
	if s.capture != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: already recording")
	}
	if s.busy || status != recorder.StatusIdle {
		s.mu.Unlock()
		return errors.InProgress()
	}
	id := uuid.NewString()
	capture, err := s.source.Start(logger.ContextWithSessionID(ctx, id))
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.id = id
	s.capture = capture
	s.mu.Unlock()

	s.log.Info("recording started", logger.Fields(logger.FieldSessionID, id))
	s.control.SetStatus(recorder.StatusRecording)
	return nil
}

// StopRecording ends the capture, moves the status to stopped and
// transcribes the clip in the background. The control stays disabled from
// the stop press until the status is back to idle. Use Wait to block until
// then.
func (s *Session) StopRecording(ctx context.Context) error {
	s.mu.Lock()
	capture, id := s.capture, s.id
	if capture == nil {
		s.mu.Unlock()
		return fmt.Errorf("session: not recording")
	}
	s.capture = nil
	s.busy = true
	s.mu.Unlock()

	s.control.SetTranscribing(true)

	ctx = logger.ContextWithSessionID(context.WithoutCancel(ctx), id)
	payload, err := capture.Stop(ctx)
	if err != nil {
		s.log.WithContext(ctx).Error("capture failed", logger.ErrorFields("stop", err))
		s.finish(err)
		return err
	}
	s.control.SetStatus(recorder.StatusStopped)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.finish(s.handler.Handle(ctx, payload))
	}()
	return nil
}

// finish records the result and re-enables the control. The status goes to
// idle before the transcribing flag drops, so the control never shows an
// enabled stopped state.
func (s *Session) finish(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.busy = false
	s.mu.Unlock()

	s.control.SetStatus(recorder.StatusIdle)
	s.control.SetTranscribing(false)
}

// Wait blocks until background transcriptions finish and returns the
// result of the last one.
func (s *Session) Wait() error {
	s.pending.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
