package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from an optional YAML file, with environment
// variables layered on top. A .env file is loaded first so local setups can
// keep the API token out of the shell profile.
type Loader struct {
	path      string
	useDotEnv bool
}

// NewLoader creates a loader for the default config path.
func NewLoader() *Loader {
	return &Loader{
		path:      "config.yaml",
		useDotEnv: true,
	}
}

// WithPath overrides the config file path.
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// Result captures the loaded configuration and its origin.
type Result struct {
	Config *Config
	Path   string
}

// Load reads the config file if present, falls back to defaults otherwise,
// and applies environment overrides. The API key is never read from YAML
// alone: HF_TOKEN always wins when set.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := Default()
	path := "defaults"

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.path, err)
		}
		path = l.path
	}

	applyEnvOverrides(cfg)

	if err := l.validate(cfg); err != nil {
		return nil, err
	}

	return &Result{Config: cfg, Path: path}, nil
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("HF_TOKEN"); token != "" {
		cfg.ASR.APIKey = token
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Web.Port = p
		}
	}
	if model := os.Getenv("ASR_MODEL"); model != "" {
		cfg.ASR.Model = model
	}
}

func (l *Loader) validate(cfg *Config) error {
	if cfg.Web.Port <= 0 || cfg.Web.Port > 65535 {
		return fmt.Errorf("invalid web port: %d", cfg.Web.Port)
	}
	if cfg.Audio.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", cfg.Audio.Channels)
	}
	if cfg.ASR.Provider == "" {
		return fmt.Errorf("asr provider must be set")
	}
	return nil
}
