package huggingface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
)

func writeAudioFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.flac")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	flacBytes := append([]byte("fLaC"), []byte("payload")...)

	t.Run("parses text response", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			w.Write([]byte(`{"text": " Кошка. "}`))
		}))
		defer server.Close()

		provider := NewProvider(Config{
			Model:   "openai/whisper-large-v3-turbo",
			BaseURL: server.URL,
			APIKey:  "hf_secret",
		}, nil)

		got, err := provider.Transcribe(context.Background(), writeAudioFile(t, flacBytes))
		if err != nil {
			t.Fatalf("Transcribe() failed: %v", err)
		}
		if got != "Кошка." {
			t.Errorf("expected trimmed transcript, got %q", got)
		}
		if gotPath != "/models/openai/whisper-large-v3-turbo" {
			t.Errorf("unexpected request path %q", gotPath)
		}
		if gotAuth != "Bearer hf_secret" {
			t.Errorf("unexpected auth header %q", gotAuth)
		}
		if gotContentType != "audio/flac" {
			t.Errorf("unexpected content type %q", gotContentType)
		}
	})

	t.Run("falls back to raw body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("  собака  "))
		}))
		defer server.Close()

		provider := NewProvider(Config{Model: "m", BaseURL: server.URL}, nil)
		got, err := provider.Transcribe(context.Background(), writeAudioFile(t, flacBytes))
		if err != nil {
			t.Fatalf("Transcribe() failed: %v", err)
		}
		if got != "собака" {
			t.Errorf("expected raw body fallback, got %q", got)
		}
	})

	t.Run("reports authentication failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		provider := NewProvider(Config{Model: "m", BaseURL: server.URL}, nil)
		_, err := provider.Transcribe(context.Background(), writeAudioFile(t, flacBytes))
		if err == nil {
			t.Fatal("expected error for 401 response")
		}
		if !errors.IsKind(err, errors.KindTranscription) {
			t.Errorf("expected transcription kind, got %v", err)
		}
		if !strings.Contains(err.Error(), "HF_TOKEN") {
			t.Errorf("error should point at the token, got %v", err)
		}
	})

	t.Run("reports server error with body snippet", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "model loading"}`))
		}))
		defer server.Close()

		provider := NewProvider(Config{Model: "m", BaseURL: server.URL}, nil)
		_, err := provider.Transcribe(context.Background(), writeAudioFile(t, flacBytes))
		if err == nil {
			t.Fatal("expected error for 503 response")
		}
		if !strings.Contains(err.Error(), "model loading") {
			t.Errorf("error should carry the body snippet, got %v", err)
		}
	})

	t.Run("missing audio file", func(t *testing.T) {
		provider := NewProvider(Config{Model: "m"}, nil)
		_, err := provider.Transcribe(context.Background(), filepath.Join(t.TempDir(), "gone.flac"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name  string
		audio []byte
		want  string
	}{
		{"flac", []byte("fLaC...."), "audio/flac"},
		{"wav", []byte("RIFF...."), "audio/wav"},
		{"webm", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x00}, "audio/webm"},
		{"ogg", []byte("OggS...."), "audio/ogg"},
		{"unknown", []byte("????"), "application/octet-stream"},
		{"empty", nil, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentTypeFor(tt.audio); got != tt.want {
				t.Errorf("contentTypeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
