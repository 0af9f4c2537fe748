package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Supabase      struct {
		URL     string `mapstructure:"url"`
		AnonKey string `mapstructure:"anon_key"`
	} `mapstructure:"supabase"`
	Recorder struct {
		PermissionDelay time.Duration `mapstructure:"permission_delay"`
	} `mapstructure:"recorder"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Name != "micscribe" {
			t.Errorf("expected default name, got %q", cfg.Name)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging defaults to apply, got level %q", cfg.Logging.Level)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		wantErr string
	}{
		{"valid development", "development", ""},
		{"valid production", "production", ""},
		{"invalid environment", "invalid", "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ServiceConfig{Environment: tc.env}
			cfg.Logging.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: micscribe-test
environment: staging
supabase:
  url: https://example.supabase.co
recorder:
  permission_delay: 250ms
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	if err := LoadConfig("micscribe", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "micscribe-test" {
		t.Errorf("expected name 'micscribe-test', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Supabase.URL != "https://example.supabase.co" {
		t.Errorf("unexpected supabase url %q", cfg.Supabase.URL)
	}
	if cfg.Recorder.PermissionDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Recorder.PermissionDelay)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MICSCRIBE_SUPABASE_ANON_KEY", "from-env")

	var cfg testConfig
	err := LoadConfig("micscribe", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{}}),
		WithDefaults(map[string]any{
			"supabase.anon_key":         "",
			"recorder.permission_delay": "500ms",
		}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Supabase.AnonKey != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Supabase.AnonKey)
	}
	if cfg.Recorder.PermissionDelay != 500*time.Millisecond {
		t.Errorf("expected default 500ms, got %v", cfg.Recorder.PermissionDelay)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{".env": true}}
	var cfg testConfig
	if err := LoadConfig("micscribe", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != ".env" {
		t.Errorf("expected .env to be loaded, got %v", fs.loaded)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/micscribe/config.yml": true,
		".env":                       true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("micscribe", LoaderConfig{})
	if files.ConfigFile != "./cmd/micscribe/config.yml" {
		t.Errorf("expected config file at ./cmd/micscribe/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("micscribe", LoaderConfig{ConfigFile: "/etc/mic.yml"})
	if explicit.ConfigFile != "/etc/mic.yml" {
		t.Errorf("explicit path should win, got %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}
