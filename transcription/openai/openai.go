// Package openai is a speech-to-text engine backed by the OpenAI audio
// transcription API.
package openai

import (
	"context"
	stderrors "errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/micscribe/provider"
	"github.com/kbukum/micscribe/transcription"
)

// ProviderName is the registered name of the OpenAI engine.
const ProviderName = "openai"

// Config holds the OpenAI settings.
type Config struct {
	APIKey string `mapstructure:"api_key"`
	// BaseURL overrides the API root, e.g. for an Azure or local gateway.
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// Prompt biases the vocabulary of the transcript.
	Prompt string `mapstructure:"prompt"`
}

// Provider implements transcription.Provider with go-openai.
type Provider struct {
	cfg    Config
	client *goopenai.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates an OpenAI engine.
func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = goopenai.Whisper1
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &Provider{cfg: cfg, client: goopenai.NewClientWithConfig(oc)}
}

// Factory builds engines from a config map with the keys api_key,
// base_url, model and prompt.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		var c Config
		c.APIKey, _ = cfg["api_key"].(string)
		c.BaseURL, _ = cfg["base_url"].(string)
		c.Model, _ = cfg["model"].(string)
		c.Prompt, _ = cfg["prompt"].(string)
		if c.APIKey == "" {
			return nil, fmt.Errorf("openai: api_key is required")
		}
		return NewProvider(c), nil
	}
}

func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Transcribe uploads the audio and returns the verbose transcript.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	if req.Audio == nil {
		return nil, fmt.Errorf("openai: no audio")
	}
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	fileName := req.FileName
	if fileName == "" {
		fileName = "audio" + transcription.ExtensionFor(req.MimeType)
	}

	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    model,
		FilePath: fileName,
		Reader:   req.Audio,
		Prompt:   p.cfg.Prompt,
		Language: req.Language,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if stderrors.As(err, &apiErr) {
			return nil, fmt.Errorf("openai: transcription rejected (HTTP %d): %w", apiErr.HTTPStatusCode, err)
		}
		return nil, fmt.Errorf("openai: transcription: %w", err)
	}

	out := &transcription.TranscriptionResponse{
		Text:     resp.Text,
		Duration: resp.Duration,
		Language: resp.Language,
	}
	for _, seg := range resp.Segments {
		out.Segments = append(out.Segments, transcription.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return out, nil
}
