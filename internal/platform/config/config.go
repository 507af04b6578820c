package config

// Config is the root configuration for the translator game server.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Web   WebConfig   `yaml:"web"`
	ASR   ASRConfig   `yaml:"asr"`
	Audio AudioConfig `yaml:"audio"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
	IndexFile string `yaml:"index_file"`
}

// ASRConfig selects and configures the speech-recognition provider.
type ASRConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	Timeout  int    `yaml:"timeout_seconds"`
}

// AudioConfig configures the ffmpeg transcode step.
type AudioConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
	Codec      string `yaml:"codec"`
	TempDir    string `yaml:"temp_dir"`
}
