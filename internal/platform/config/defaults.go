package config

// Default returns the configuration used when no config file is present.
// The HuggingFace Whisper endpoint matches the hosted inference examples.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
			File:  "server.log",
		},
		Web: WebConfig{
			Port:      8000,
			StaticDir: "web/static",
			IndexFile: "web/static/index.html",
		},
		ASR: ASRConfig{
			Provider: "huggingface",
			Model:    "openai/whisper-large-v3-turbo",
			BaseURL:  "https://router.huggingface.co/hf-inference",
			Timeout:  60,
		},
		Audio: AudioConfig{
			FFmpegPath: "ffmpeg",
			SampleRate: 16000,
			Channels:   1,
			Codec:      "flac",
		},
	}
}
