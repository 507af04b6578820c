package check

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Requestin/TranslatorVoiceGame/internal/domain/eventbus"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/text"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

// Transcoder converts uploaded container audio to the recognition format.
// It is best effort and must return usable bytes on every call.
type Transcoder interface {
	Transcode(ctx context.Context, raw []byte) []byte
}

// Transcriber runs speech recognition on an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Input is one uploaded pronunciation attempt. Filename and ContentType are
// informational only.
type Input struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Result is the structured outcome returned to the client. Failures are a
// regular value here, not an error: the HTTP layer serializes this as-is
// with status 200 and the client branches on Success.
type Result struct {
	Success     bool   `json:"success"`
	Transcribed string `json:"transcribed"`
	Normalized  string `json:"normalized,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Service runs the answer-check pipeline: transcode, transcribe, normalize.
type Service struct {
	transcoder  Transcoder
	transcriber Transcriber
	tempDir     string
	logger      *logging.Logger
}

// Options configures the answer-check service.
type Options struct {
	Transcoder  Transcoder
	Transcriber Transcriber
	TempDir     string
	Logger      *logging.Logger
}

// NewService creates the answer-check service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.DefaultLogger
	}
	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		transcoder:  opts.Transcoder,
		transcriber: opts.Transcriber,
		tempDir:     tempDir,
		logger:      logger,
	}
}

// Check processes one uploaded attempt. Every handled failure comes back as
// Result{Success: false}; the method never panics and never leaks the temp
// file it creates for the recognition call.
func (s *Service) Check(ctx context.Context, input Input) Result {
	checkID := uuid.NewString()

	s.logger.InfoTag("CHECK", "received audio %q (%s), %d bytes [%s]",
		input.Filename, input.ContentType, len(input.Data), checkID)
	eventbus.PublishAsync(eventbus.EventCheckReceived, eventbus.CheckEventData{
		CheckID:   checkID,
		Filename:  input.Filename,
		InputSize: len(input.Data),
	})

	if len(input.Data) == 0 {
		return s.fail(checkID, "empty audio upload")
	}

	// Transcode failures are absorbed inside the transcoder: worst case we
	// get the original bytes back and let the recognition API decide.
	audio := s.transcoder.Transcode(ctx, input.Data)
	eventbus.PublishAsync(eventbus.EventCheckTranscoded, eventbus.CheckEventData{
		CheckID:    checkID,
		InputSize:  len(input.Data),
		OutputSize: len(audio),
	})

	transcribed, err := s.recognize(ctx, checkID, audio)
	if err != nil {
		s.logger.WarnTag("CHECK", "recognition failed [%s]: %v", checkID, err)
		return s.fail(checkID, "speech recognition failed: "+err.Error())
	}

	transcribed = strings.TrimSpace(transcribed)
	if transcribed == "" {
		// The API can legitimately return an empty transcript for silent
		// or unintelligible audio; this is not an error.
		s.logger.InfoTag("CHECK", "no speech recognized [%s]", checkID)
		return s.fail(checkID, "could not recognize any speech")
	}

	normalized := text.Normalize(transcribed)
	s.logger.InfoTag("CHECK", "recognized %q -> normalized %q [%s]", transcribed, normalized, checkID)
	eventbus.PublishAsync(eventbus.EventCheckResult, eventbus.CheckEventData{
		CheckID: checkID,
		Text:    normalized,
		Success: true,
	})

	return Result{
		Success:     true,
		Transcribed: transcribed,
		Normalized:  normalized,
	}
}

// recognize writes the audio to a scoped temp file and runs the provider
// against its path. The file is removed on every exit path.
func (s *Service) recognize(ctx context.Context, checkID string, audio []byte) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "check_"+checkID+"_*.flac")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	s.logger.DebugTag("CHECK", "wrote %d bytes to %s [%s]", len(audio), tmp.Name(), checkID)
	return s.transcriber.Transcribe(ctx, tmp.Name())
}

func (s *Service) fail(checkID, message string) Result {
	eventbus.PublishAsync(eventbus.EventCheckError, eventbus.CheckEventData{
		CheckID: checkID,
		Message: message,
	})
	return Result{
		Success:     false,
		Transcribed: "",
		Message:     message,
	}
}
