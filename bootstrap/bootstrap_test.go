package bootstrap

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kbukum/micscribe/config"
	"github.com/kbukum/micscribe/logger"
)

type testConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
}

func newTestConfig(name string) *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: name, Environment: "development"}}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("test-svc"), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version == "" {
		t.Error("expected a version")
	}
	if app.Cfg.Logging.Level != "info" {
		t.Errorf("expected defaults applied, got level %q", app.Cfg.Logging.Level)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected 15s default timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Environment: "moon"}}
	if _, err := NewApp(cfg, WithLogger(logger.Nop())); err == nil {
		t.Error("expected validation error for unknown environment")
	}
}

func TestNewAppWithOptions(t *testing.T) {
	app, err := NewApp(newTestConfig("test"), WithLogger(logger.Nop()), WithGracefulTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app, _ := NewApp(newTestConfig("test"), WithLogger(logger.Nop()))

	var order []string
	record := func(name string) Hook {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}
	app.OnStart(record("start"))
	app.OnReady(record("ready"))
	app.OnStop(record("stop"))
	app.AddCloser("first", func(context.Context) error {
		order = append(order, "close-first")
		return nil
	})
	app.AddCloser("second", func(context.Context) error {
		order = append(order, "close-second")
		return nil
	})

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"start", "ready", "task", "stop", "close-second", "close-first"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestRunTaskErrors(t *testing.T) {
	t.Run("task error wins over close error", func(t *testing.T) {
		app, _ := NewApp(newTestConfig("test"), WithLogger(logger.Nop()))
		app.AddCloser("backend", func(context.Context) error { return fmt.Errorf("close failed") })
		err := app.RunTask(context.Background(), func(context.Context) error { return fmt.Errorf("task failed") })
		if err == nil || err.Error() != "task failed" {
			t.Errorf("expected task error, got %v", err)
		}
	})

	t.Run("close error surfaces", func(t *testing.T) {
		app, _ := NewApp(newTestConfig("test"), WithLogger(logger.Nop()))
		app.AddCloser("backend", func(context.Context) error { return fmt.Errorf("close failed") })
		err := app.RunTask(context.Background(), func(context.Context) error { return nil })
		if err == nil || err.Error() != "close backend: close failed" {
			t.Errorf("expected close error, got %v", err)
		}
	})

	t.Run("start hook error aborts", func(t *testing.T) {
		app, _ := NewApp(newTestConfig("test"), WithLogger(logger.Nop()))
		app.OnStart(func(context.Context) error { return fmt.Errorf("no telemetry") })
		ran := false
		err := app.RunTask(context.Background(), func(context.Context) error {
			ran = true
			return nil
		})
		if err == nil || ran {
			t.Errorf("expected startup failure without running the task, err=%v ran=%v", err, ran)
		}
	})
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, _ := NewApp(newTestConfig("test"), WithLogger(logger.Nop()))
	stopped := false
	app.OnStop(func(context.Context) error {
		stopped = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !stopped {
		t.Error("expected stop hooks to run")
	}
}

func TestSummary(t *testing.T) {
	s := NewSummary("svc", "1.0")
	s.Add("backend", "supabase", "https://x.supabase.co/functions/v1")
	s.Add("route", "POST", "/functions/v1/:name")
	entries := s.Entries()
	if len(entries) != 2 || entries[0].Name != "supabase" || entries[1].Kind != "route" {
		t.Errorf("unexpected entries %+v", entries)
	}
	s.Display(logger.Nop())
}
