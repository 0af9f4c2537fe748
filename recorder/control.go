package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/micscribe/errors"
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/platform"
)

// Option configures a Control.
type Option func(*Control)

// WithRenderer sets the renderer called after every visible change.
func WithRenderer(r Renderer) Option {
	return func(c *Control) { c.renderer = r }
}

// WithLogger sets the control logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Control) { c.log = log }
}

// WithMetrics records permission probes.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Control) { c.metrics = m }
}

// Control is the microphone toggle. It is safe for concurrent use; the lock
// is not held while waiting for the permission delay or the microphone.
type Control struct {
	cfg      Config
	caps     platform.Capabilities
	mic      platform.Microphone
	actions  Actions
	renderer Renderer
	log      *logger.Logger
	metrics  *observability.Metrics

	mu           sync.Mutex
	status       Status
	secure       bool
	denied       bool
	transcribing bool
	hint         bool
}

// New creates a control in the idle status and reads the secure flag once.
func New(cfg Config, caps platform.Capabilities, mic platform.Microphone, actions Actions, opts ...Option) *Control {
	c := &Control{
		cfg:     cfg,
		caps:    caps,
		mic:     mic,
		actions: actions,
		log:     logger.Get("recorder"),
		status:  StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.refreshSecureLocked()
	v := c.viewLocked()
	c.mu.Unlock()
	c.render(v)
	return c
}

// SetStatus updates the caller-owned status. A change re-reads the secure
// flag, and a change to idle clears the permission-denied flag.
func (c *Control) SetStatus(s Status) {
	c.mu.Lock()
	if s == c.status {
		c.mu.Unlock()
		return
	}
	c.status = s
	c.refreshSecureLocked()
	if s == StatusIdle {
		c.denied = false
	}
	v := c.viewLocked()
	c.mu.Unlock()

	c.log.Debug("status changed", logger.Fields(logger.FieldStatus, string(s)))
	c.render(v)
}

// SetTranscribing records whether a transcription is running.
func (c *Control) SetTranscribing(transcribing bool) {
	c.mu.Lock()
	if c.transcribing == transcribing {
		c.mu.Unlock()
		return
	}
	c.transcribing = transcribing
	v := c.viewLocked()
	c.mu.Unlock()
	c.render(v)
}

// Click activates the control: it stops a running recording, otherwise it
// requests microphone access and starts one. A disabled control returns
// CONTROL_DISABLED and does nothing.
func (c *Control) Click(ctx context.Context) error {
	c.mu.Lock()
	reason := c.disabledReasonLocked()
	recording := c.status == StatusRecording
	c.mu.Unlock()

	switch reason {
	case "":
	case reasonInsecure:
		return errors.InsecureContext()
	default:
		return errors.ControlDisabled(reason)
	}
	if recording {
		return c.actions.StopRecording(ctx)
	}
	return c.RequestStart(ctx)
}

// RequestStart shows the permission hint, waits PermissionDelay, probes the
// microphone and, when access is granted, releases the probe and starts
// recording. A refusal sets the permission-denied flag until the status
// returns to idle.
func (c *Control) RequestStart(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanPermission)
	defer span.End()

	c.setHint(true)

	if err := sleep(ctx, c.cfg.PermissionDelay); err != nil {
		c.setHint(false)
		return err
	}

	c.log.Info("requesting microphone access")
	stream, err := c.mic.Open(ctx)
	if err != nil {
		c.metrics.RecordPermission(ctx, false)
		observability.SetSpanError(ctx, err)
		c.log.Error("microphone permission error", logger.ErrorFields("permission", err))

		c.mu.Lock()
		c.denied = true
		c.hint = false
		v := c.viewLocked()
		c.mu.Unlock()
		c.render(v)
		return errors.PermissionDenied(err)
	}
	stream.Stop()
	c.metrics.RecordPermission(ctx, true)

	c.log.Info("microphone permission granted, starting recording")
	c.setHint(false)
	return c.actions.StartRecording(ctx)
}

// View returns the current rendered state.
func (c *Control) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Control) setHint(show bool) {
	c.mu.Lock()
	c.hint = show
	v := c.viewLocked()
	c.mu.Unlock()
	c.render(v)
}

func (c *Control) refreshSecureLocked() {
	c.secure = c.caps.IsSecureContext()
	if !c.secure {
		c.log.Error("audio recording requires a secure context (HTTPS)")
	}
}

const reasonInsecure = "insecure_context"

func (c *Control) disabledReasonLocked() string {
	switch {
	case !c.secure:
		return reasonInsecure
	case c.denied:
		return "permission_denied"
	case c.transcribing:
		return "transcribing"
	}
	return ""
}

func (c *Control) viewLocked() View {
	v := View{
		Status:    c.status,
		Disabled:  c.disabledReasonLocked() != "",
		Recording: c.status == StatusRecording,
		Icon:      IconMic,
		Label:     LabelRecord,
	}
	if v.Recording {
		v.Icon = IconSquare
		v.Label = LabelStop
	}
	if c.hint {
		v.Hint = MsgPermissionHint
	}
	if !c.secure {
		v.SecureWarning = errors.MsgInsecureContext
	}
	if c.denied {
		v.DeniedNotice = errors.MsgPermissionDenied
	}
	return v
}

func (c *Control) render(v View) {
	if c.renderer != nil {
		c.renderer.Render(v)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
