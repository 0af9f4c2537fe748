package main

import (
	"fmt"

	"github.com/kbukum/micscribe/config"
	"github.com/kbukum/micscribe/devserver"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/recorder"
	"github.com/kbukum/micscribe/session"
	"github.com/kbukum/micscribe/transcription/openai"
	"github.com/kbukum/micscribe/transcription/supabase"
	"github.com/kbukum/micscribe/transcription/whisper"
	"github.com/kbukum/micscribe/validation"
)

const serviceName = "micscribe"

// Backend names.
const (
	BackendSupabase = supabase.ProviderName
	BackendWhisper  = whisper.ProviderName
	BackendOpenAI   = openai.ProviderName
)

var backends = []string{BackendSupabase, BackendWhisper, BackendOpenAI}

// AppConfig is the configuration of the micscribe command.
type AppConfig struct {
	config.ServiceConfig `mapstructure:",squash"`

	// Backend selects who answers transcribe-audio requests.
	Backend string `mapstructure:"backend"`
	// Origin is the page origin the recorder runs under; it decides the
	// secure-context flag.
	Origin    string `mapstructure:"origin"`
	UserAgent string `mapstructure:"user_agent"`

	Session       session.Config       `mapstructure:"session"`
	Supabase      supabase.Config      `mapstructure:"supabase"`
	Whisper       whisper.Config       `mapstructure:"whisper"`
	OpenAI        openai.Config        `mapstructure:"openai"`
	Observability observability.Config `mapstructure:"observability"`
	Devserver     devserver.Config     `mapstructure:"devserver"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Backend == "" {
		c.Backend = BackendSupabase
	}
	if c.Origin == "" {
		c.Origin = "http://localhost"
	}
	if c.UserAgent == "" {
		c.UserAgent = serviceName
	}
	c.Supabase.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Devserver.ApplyDefaults()
}

// Validate checks the sections the selected backend needs.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	v := validation.New().OneOf("backend", c.Backend, backends)
	if c.Backend == BackendOpenAI {
		v.Required("openai.api_key", c.OpenAI.APIKey)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if c.Backend == BackendSupabase {
		if err := c.Supabase.Validate(); err != nil {
			return err
		}
	}
	if err := validation.Validate(c.Observability); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return c.Devserver.Server.Validate()
}

// defaults are registered with the loader so that every key can be
// overridden through MICSCRIBE_* environment variables.
func defaults() map[string]any {
	return map[string]any{
		"name":                              serviceName,
		"environment":                       "development",
		"logging.level":                     "info",
		"logging.format":                    "console",
		"backend":                           BackendSupabase,
		"origin":                            "http://localhost",
		"user_agent":                        serviceName,
		"session.language":                  "",
		"session.content_sniffing":          true,
		"session.recorder.permission_delay": recorder.DefaultPermissionDelay.String(),
		"supabase.url":                      "",
		"supabase.anon_key":                 "",
		"supabase.function":                 supabase.DefaultFunction,
		"supabase.timeout":                  "0s",
		"whisper.url":                       "",
		"whisper.model":                     "",
		"whisper.language":                  "",
		"openai.api_key":                    "",
		"openai.base_url":                   "",
		"openai.model":                      "",
		"observability.enabled":             false,
		"observability.endpoint":            "",
		"observability.sample_rate":         1.0,
		"devserver.anon_key":                "",
		"devserver.function":                supabase.DefaultFunction,
		"devserver.server.port":             54321,
	}
}

func loadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	opts := []config.LoaderOption{config.WithDefaults(defaults())}
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
