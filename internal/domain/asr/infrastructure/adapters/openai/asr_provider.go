package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

// Provider runs speech recognition through the OpenAI audio transcription
// API (or any compatible endpoint via a custom base URL). Useful when no
// HuggingFace token is available.
type Provider struct {
	model  string
	client *goopenai.Client
	logger *logging.Logger
}

// Config for the OpenAI-compatible adapter.
type Config struct {
	Model   string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewProvider creates an OpenAI-compatible ASR provider.
func NewProvider(cfg Config, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	model := cfg.Model
	if model == "" {
		model = goopenai.Whisper1
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Provider{
		model:  model,
		client: goopenai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

// Name identifies the provider.
func (p *Provider) Name() string { return "openai" }

// Transcribe sends the audio file path to the transcription endpoint. The
// API client is path-based, so no extra temp file is needed here.
func (p *Provider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    p.model,
		FilePath: audioPath,
	})
	if err != nil {
		return "", errors.Wrap(errors.KindTranscription, "openai.transcribe", "transcription request failed", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
