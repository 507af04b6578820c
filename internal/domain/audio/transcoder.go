package audio

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"

	"github.com/Requestin/TranslatorVoiceGame/internal/platform/config"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

// Transcoder converts browser-recorded audio containers into the fixed
// mono/16kHz format the recognition API expects. Conversion is best effort:
// when ffmpeg is missing or the input cannot be decoded, the original bytes
// are passed through unchanged and the remote API decides whether it can
// handle them.
type Transcoder struct {
	ffmpegPath string
	sampleRate int
	channels   int
	codec      string
	tempDir    string
	logger     *logging.Logger
}

// NewTranscoder creates a transcoder from the audio configuration.
func NewTranscoder(cfg config.AudioConfig, logger *logging.Logger) *Transcoder {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	ffmpegPath := cfg.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	channels := cfg.Channels
	if channels <= 0 {
		channels = 1
	}
	codec := cfg.Codec
	if codec == "" {
		codec = "flac"
	}
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Transcoder{
		ffmpegPath: ffmpegPath,
		sampleRate: sampleRate,
		channels:   channels,
		codec:      codec,
		tempDir:    tempDir,
		logger:     logger,
	}
}

// Transcode converts raw container audio to the target codec at the
// configured rate and channel count. On any failure it logs and returns the
// input unchanged; it never returns an error. The scoped temp file is
// removed on every path.
func (t *Transcoder) Transcode(ctx context.Context, raw []byte) []byte {
	out, err := t.run(ctx, raw)
	if err != nil {
		t.logger.WarnTag("AUDIO", "transcode failed, passing original bytes through: %v", err)
		return raw
	}
	t.logger.DebugTag("AUDIO", "transcoded %d -> %d bytes (%s %dHz %dch)",
		len(raw), len(out), t.codec, t.sampleRate, t.channels)
	return out
}

func (t *Transcoder) run(ctx context.Context, raw []byte) ([]byte, error) {
	tmp, err := os.CreateTemp(t.tempDir, "upload_*.webm")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	// Re-encoded audio goes to stdout, so the input temp file is the only
	// filesystem footprint of this step.
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", tmp.Name(),
		"-ac", strconv.Itoa(t.channels),
		"-ar", strconv.Itoa(t.sampleRate),
		"-f", t.codec,
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, &convertError{cause: err, detail: stderr.String()}
		}
		return nil, err
	}
	if stdout.Len() == 0 {
		return nil, &convertError{detail: "ffmpeg produced no output"}
	}
	return stdout.Bytes(), nil
}

type convertError struct {
	cause  error
	detail string
}

func (e *convertError) Error() string {
	if e.cause != nil {
		return e.cause.Error() + ": " + e.detail
	}
	return e.detail
}

func (e *convertError) Unwrap() error { return e.cause }
