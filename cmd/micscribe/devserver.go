package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"

	"github.com/kbukum/micscribe/bootstrap"
	"github.com/kbukum/micscribe/devserver"
	"github.com/kbukum/micscribe/transcription"
	"github.com/kbukum/micscribe/transcription/whisper"
)

func runDevserver(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address, e.g. :54321")
	cfgPath := fs.String("config", "", "config file path")
	engine := fs.String("engine", whisper.ProviderName, "engine answering requests: whisper or openai")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		if err := applyAddr(&cfg.Devserver, *addr); err != nil {
			return err
		}
	}
	// The engine is the backend the emulator answers with.
	cfg.Backend = *engine
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	app.OnStart(telemetryHook(app))
	app.OnStart(func(ctx context.Context) error {
		eng, err := newEngine(ctx, cfg, cfg.Backend)
		if err != nil {
			return err
		}
		srv := devserver.New(cfg.Devserver, transcription.Local(eng), cfg.Name, app.Logger)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		app.AddCloser("server", srv.Stop)
		app.Summary.Add("engine", eng.Name(), "")
		app.Summary.Add("route", "POST", "http://"+srv.Addr()+"/functions/v1/"+cfg.Devserver.Function)
		return nil
	})
	return app.Run(ctx)
}

func applyAddr(cfg *devserver.Config, addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("devserver: -addr: %w", err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("devserver: -addr port %q: %w", port, err)
	}
	cfg.Server.Host = host
	cfg.Server.Port = p
	return nil
}
