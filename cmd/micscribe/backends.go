package main

import (
	"context"
	"fmt"

	"github.com/kbukum/micscribe/provider"
	"github.com/kbukum/micscribe/transcription"
	"github.com/kbukum/micscribe/transcription/openai"
	"github.com/kbukum/micscribe/transcription/supabase"
	"github.com/kbukum/micscribe/transcription/whisper"
)

// localFactory serves the transcribe-audio contract with an in-process
// engine built by f.
func localFactory(f provider.Factory[transcription.Provider]) provider.Factory[transcription.Transcriber] {
	return func(cfg map[string]any) (transcription.Transcriber, error) {
		engine, err := f(cfg)
		if err != nil {
			return nil, err
		}
		return transcription.Local(engine), nil
	}
}

func backendSettings(cfg *AppConfig, name string) map[string]any {
	switch name {
	case BackendSupabase:
		return map[string]any{
			"url":      cfg.Supabase.URL,
			"anon_key": cfg.Supabase.AnonKey,
			"function": cfg.Supabase.Function,
			"timeout":  cfg.Supabase.Timeout,
		}
	case BackendWhisper:
		return map[string]any{
			"url":      cfg.Whisper.URL,
			"model":    cfg.Whisper.Model,
			"language": cfg.Whisper.Language,
			"timeout":  cfg.Whisper.Timeout,
		}
	case BackendOpenAI:
		return map[string]any{
			"api_key":  cfg.OpenAI.APIKey,
			"base_url": cfg.OpenAI.BaseURL,
			"model":    cfg.OpenAI.Model,
			"prompt":   cfg.OpenAI.Prompt,
		}
	}
	return nil
}

// newBackends registers every backend and initializes the configured one
// as default.
func newBackends(ctx context.Context, cfg *AppConfig) (*provider.Manager[transcription.Transcriber], error) {
	mgr := provider.NewManager(
		provider.NewRegistry[transcription.Transcriber](),
		&provider.HealthCheckSelector[transcription.Transcriber]{},
	)
	mgr.Register(BackendSupabase, supabase.Factory())
	mgr.Register(BackendWhisper, localFactory(whisper.Factory()))
	mgr.Register(BackendOpenAI, localFactory(openai.Factory()))

	if err := mgr.InitializeWithContext(ctx, cfg.Backend, backendSettings(cfg, cfg.Backend)); err != nil {
		return nil, err
	}
	if err := mgr.SetDefault(cfg.Backend); err != nil {
		return nil, err
	}
	return mgr, nil
}

// newEngine builds the in-process engine behind the local function emulator.
func newEngine(ctx context.Context, cfg *AppConfig, name string) (transcription.Provider, error) {
	mgr := transcription.NewManager(transcription.WithPriority(name))
	mgr.Register(whisper.ProviderName, whisper.Factory())
	mgr.Register(openai.ProviderName, openai.Factory())

	switch name {
	case whisper.ProviderName, openai.ProviderName:
	default:
		return nil, fmt.Errorf("engine must be %s or %s (got: %s)", whisper.ProviderName, openai.ProviderName, name)
	}
	if err := mgr.InitializeWithContext(ctx, name, backendSettings(cfg, name)); err != nil {
		return nil, err
	}
	return mgr.GetByName(name)
}
