package infrastructure

import (
	"fmt"
	"time"

	"github.com/Requestin/TranslatorVoiceGame/internal/domain/asr/inter"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/asr/infrastructure/adapters/huggingface"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/asr/infrastructure/adapters/openai"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

// NewProvider builds the recognition provider named in the configuration.
func NewProvider(cfg inter.Config, logger *logging.Logger) (inter.Provider, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second

	switch cfg.Provider {
	case "huggingface", "":
		return huggingface.NewProvider(huggingface.Config{
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: timeout,
		}, logger), nil
	case "openai":
		return openai.NewProvider(openai.Config{
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: timeout,
		}, logger), nil
	default:
		return nil, errors.New(errors.KindConfig, "asr.factory",
			fmt.Sprintf("unknown asr provider %q", cfg.Provider))
	}
}
