package huggingface

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

const defaultBaseURL = "https://router.huggingface.co/hf-inference"

// Provider calls the HuggingFace hosted inference endpoint for automatic
// speech recognition. The audio file is posted as the raw request body, the
// way the hf-inference examples do it.
type Provider struct {
	model   string
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *logging.Logger
}

// Config for the HuggingFace adapter.
type Config struct {
	Model   string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// asrResponse is the expected happy-path response shape.
type asrResponse struct {
	Text string `json:"text"`
}

// NewProvider creates a HuggingFace ASR provider.
func NewProvider(cfg Config, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Provider{
		model:   cfg.Model,
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Name identifies the provider.
func (p *Provider) Name() string { return "huggingface" }

// Transcribe posts the audio file to the inference endpoint and extracts the
// recognized text. When the response does not match the expected shape the
// whole body is used as the result, mirroring the hosted-API client behavior
// of falling back to str(result).
func (p *Provider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", errors.Wrap(errors.KindTranscription, "hf.transcribe", "failed to read audio file", err)
	}

	url := fmt.Sprintf("%s/models/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return "", errors.Wrap(errors.KindTranscription, "hf.transcribe", "failed to build request", err)
	}
	req.Header.Set("Content-Type", contentTypeFor(audio))
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	p.logger.DebugTag("ASR", "posting %d bytes to %s", len(audio), url)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.KindTranscription, "hf.transcribe", "inference request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(errors.KindTranscription, "hf.transcribe", "failed to read response", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", errors.New(errors.KindTranscription, "hf.transcribe",
			fmt.Sprintf("authentication failed (%d): check HF_TOKEN", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New(errors.KindTranscription, "hf.transcribe",
			fmt.Sprintf("inference API returned %d: %s", resp.StatusCode, snippet(body)))
	}

	var parsed asrResponse
	if err := sonic.Unmarshal(body, &parsed); err == nil && parsed.Text != "" {
		return strings.TrimSpace(parsed.Text), nil
	}

	// Unexpected but successful response shape: hand back the raw body.
	return strings.TrimSpace(string(body)), nil
}

// contentTypeFor sniffs the transcoded payload. The transcoder targets FLAC,
// but its pass-through fallback can hand us the original webm recording.
func contentTypeFor(audio []byte) string {
	switch {
	case bytes.HasPrefix(audio, []byte("fLaC")):
		return "audio/flac"
	case bytes.HasPrefix(audio, []byte("RIFF")):
		return "audio/wav"
	case bytes.HasPrefix(audio, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return "audio/webm"
	case bytes.HasPrefix(audio, []byte("OggS")):
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
