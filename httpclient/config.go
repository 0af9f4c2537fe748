package httpclient

import (
	"fmt"
	"time"
)

const defaultMaxResponseBytes = 4 << 20

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs and provider selection.
	Name string `mapstructure:"name"`

	// BaseURL is prepended to relative request paths.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds a whole request including upload. Zero means no limit;
	// the request context still applies.
	Timeout time.Duration `mapstructure:"timeout"`

	// Headers are applied to every request before request-level headers.
	Headers map[string]string `mapstructure:"headers"`

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes int64 `mapstructure:"max_response_bytes"`

	// Auth is applied to every request unless the request overrides it.
	Auth *AuthConfig `mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaultMaxResponseBytes
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("httpclient: timeout must not be negative")
	}
	if c.MaxResponseBytes <= 0 {
		return fmt.Errorf("httpclient: max_response_bytes must be positive")
	}
	return nil
}
