package audio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Requestin/TranslatorVoiceGame/internal/platform/config"
)

// writeWavFixture produces a short valid mono WAV file so the fallback test
// exercises a realistic payload instead of random bytes.
func writeWavFixture(t *testing.T, dir string) []byte {
	t.Helper()

	path := filepath.Join(dir, "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 16000},
		SourceBitDepth: 16,
		Data:           make([]int, 160),
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 64) * 100
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write fixture samples: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestTranscodeFallsBackWhenFFmpegMissing(t *testing.T) {
	tempDir := t.TempDir()
	raw := writeWavFixture(t, t.TempDir())

	transcoder := NewTranscoder(config.AudioConfig{
		FFmpegPath: filepath.Join(t.TempDir(), "no-such-ffmpeg"),
		SampleRate: 16000,
		Channels:   1,
		Codec:      "flac",
		TempDir:    tempDir,
	}, nil)

	out := transcoder.Transcode(context.Background(), raw)
	if !bytes.Equal(out, raw) {
		t.Error("expected original bytes back when ffmpeg is unavailable")
	}
}

func TestTranscodeCleansUpTempFile(t *testing.T) {
	tempDir := t.TempDir()

	transcoder := NewTranscoder(config.AudioConfig{
		FFmpegPath: filepath.Join(t.TempDir(), "no-such-ffmpeg"),
		TempDir:    tempDir,
	}, nil)

	transcoder.Transcode(context.Background(), []byte("not really audio"))

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("temp files leaked: %v", names)
	}
}

func TestTranscodeEmptyInput(t *testing.T) {
	transcoder := NewTranscoder(config.AudioConfig{
		FFmpegPath: filepath.Join(t.TempDir(), "no-such-ffmpeg"),
		TempDir:    t.TempDir(),
	}, nil)

	out := transcoder.Transcode(context.Background(), nil)
	if len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %d bytes", len(out))
	}
}

func TestNewTranscoderDefaults(t *testing.T) {
	transcoder := NewTranscoder(config.AudioConfig{}, nil)

	if transcoder.ffmpegPath != "ffmpeg" {
		t.Errorf("expected default ffmpeg path, got %q", transcoder.ffmpegPath)
	}
	if transcoder.sampleRate != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", transcoder.sampleRate)
	}
	if transcoder.channels != 1 {
		t.Errorf("expected default channel count 1, got %d", transcoder.channels)
	}
	if transcoder.codec != "flac" {
		t.Errorf("expected default codec flac, got %q", transcoder.codec)
	}
}
