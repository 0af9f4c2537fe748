package recorder

import (
	"context"
	"time"
)

// Status is the recording status owned by the caller.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRecording Status = "recording"
	StatusStopped   Status = "stopped"
)

// User-visible text.
const (
	MsgPermissionHint = "Pensez à autoriser l'accès à votre microphone dans le navigateur."
	LabelStop         = "Stop"
	LabelRecord       = "Enregistrer"
)

// Icon names.
const (
	IconMic    = "mic"
	IconSquare = "square"
)

// DefaultPermissionDelay is the pause between showing the permission hint
// and asking for the microphone.
const DefaultPermissionDelay = 500 * time.Millisecond

// Config configures a Control.
type Config struct {
	// PermissionDelay may be zero.
	PermissionDelay time.Duration `mapstructure:"permission_delay" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{PermissionDelay: DefaultPermissionDelay}
}

// Actions are the caller's start and stop operations.
type Actions interface {
	StartRecording(ctx context.Context) error
	StopRecording(ctx context.Context) error
}

// ActionFuncs adapts two functions to Actions. Nil functions do nothing.
type ActionFuncs struct {
	Start func(ctx context.Context) error
	Stop  func(ctx context.Context) error
}

func (a ActionFuncs) StartRecording(ctx context.Context) error {
	if a.Start == nil {
		return nil
	}
	return a.Start(ctx)
}

func (a ActionFuncs) StopRecording(ctx context.Context) error {
	if a.Stop == nil {
		return nil
	}
	return a.Stop(ctx)
}

// View is the rendered state of the control. Empty strings are not shown.
type View struct {
	Status        Status `json:"status"`
	Hint          string `json:"hint,omitempty"`
	SecureWarning string `json:"secure_warning,omitempty"`
	DeniedNotice  string `json:"denied_notice,omitempty"`
	Disabled      bool   `json:"disabled"`
	Recording     bool   `json:"recording"`
	Icon          string `json:"icon"`
	Label         string `json:"label"`
}

// Renderer displays a View.
type Renderer interface {
	Render(v View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(v View)

func (f RendererFunc) Render(v View) { f(v) }
