package supabase

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/micscribe/validation"
)

// DefaultFunction is the edge function that transcribes audio.
const DefaultFunction = "transcribe-audio"

// Config holds the Supabase project settings.
type Config struct {
	// URL is the project URL (e.g., https://xyz.supabase.co).
	URL string `mapstructure:"url" validate:"required,url"`

	// AnonKey is the public anon key, sent as Bearer token and apikey header.
	AnonKey string `mapstructure:"anon_key" validate:"required"`

	// Function is the edge function name.
	Function string `mapstructure:"function" validate:"required"`

	// Timeout bounds the function call. Zero, the default, waits for the
	// answer as long as the caller's context allows.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Function == "" {
		c.Function = DefaultFunction
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("supabase: invalid config: %w", err)
	}
	return nil
}

// FunctionsURL returns the base URL of the project's edge functions.
func (c *Config) FunctionsURL() string {
	return strings.TrimRight(c.URL, "/") + "/functions/v1"
}

func configFromMap(cfg map[string]any) Config {
	var c Config
	if v, ok := cfg["url"].(string); ok {
		c.URL = v
	}
	if v, ok := cfg["anon_key"].(string); ok {
		c.AnonKey = v
	}
	if v, ok := cfg["function"].(string); ok {
		c.Function = v
	}
	switch v := cfg["timeout"].(type) {
	case time.Duration:
		c.Timeout = v
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	return c
}
