package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/kbukum/micscribe/bootstrap"
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/notify"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/platform"
	"github.com/kbukum/micscribe/recorder"
	"github.com/kbukum/micscribe/session"
	"github.com/kbukum/micscribe/transcription"
)

func runTranscribe(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	file := fs.String("file", "", "recorded clip to transcribe")
	mime := fs.String("mime", "", "MIME type of the clip; detected from its content when empty")
	cfgPath := fs.String("config", "", "config file path")
	backend := fs.String("backend", "", "override the configured backend")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("transcribe: -file is required")
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	app.OnStart(telemetryHook(app))
	app.Summary.Add("backend", cfg.Backend, *file)

	return app.RunTask(ctx, func(ctx context.Context) error {
		text, err := transcribeFile(ctx, app, *file, *mime)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, text)
		return err
	})
}

// transcribeFile plays one record/stop cycle over file and returns the
// transcript.
func transcribeFile(ctx context.Context, app *bootstrap.App[*AppConfig], file, mime string) (string, error) {
	cfg := app.Cfg

	backends, err := newBackends(ctx, cfg)
	if err != nil {
		return "", err
	}
	app.AddCloser("backends", backends.Close)

	t, err := backends.Get(ctx)
	if err != nil {
		return "", err
	}
	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		app.Logger.Warn("metrics disabled", logger.ErrorFields("metrics", err))
	}
	t = transcription.Instrument(t, app.Logger.WithComponent("provider"), metrics, cfg.Name)

	caps, err := platform.FromOrigin(cfg.Origin, cfg.UserAgent)
	if err != nil {
		return "", err
	}

	var answer string
	sess, err := session.New(cfg.Session, session.Deps{
		Source:       session.FileSource{Path: file, MimeType: mime},
		Transcriber:  t,
		Capabilities: caps,
		Microphone:   platform.FileMicrophone{Path: file},
		Sink:         transcription.SinkFunc(func(text string) { answer = text }),
		Notifier:     notify.NewLogNotifier(app.Logger.WithComponent("notify")),
		Renderer:     viewLogger(app.Logger.WithComponent("recorder")),
		Metrics:      metrics,
		Logger:       app.Logger,
	})
	if err != nil {
		return "", err
	}

	// First press asks for the microphone and starts, second press stops.
	if err := sess.Click(ctx); err != nil {
		return "", err
	}
	if err := sess.Click(ctx); err != nil {
		return "", err
	}
	if err := sess.Wait(); err != nil {
		return "", err
	}
	return answer, nil
}

func viewLogger(log *logger.Logger) recorder.Renderer {
	return recorder.RendererFunc(func(v recorder.View) {
		log.Debug("view", logger.Fields(
			logger.FieldStatus, string(v.Status),
			"label", v.Label,
			"disabled", v.Disabled,
			"hint", v.Hint,
		))
	})
}

// telemetryHook starts the OTLP exporters and registers their shutdown.
func telemetryHook(app *bootstrap.App[*AppConfig]) bootstrap.Hook {
	return func(ctx context.Context) error {
		cfg := app.Cfg
		shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, app.Version, cfg.Environment)
		if err != nil {
			return err
		}
		app.AddCloser("telemetry", shutdown)
		if cfg.Observability.Enabled {
			app.Summary.Add("telemetry", "otlp", cfg.Observability.Endpoint)
		}
		return nil
	}
}
