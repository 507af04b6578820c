package game

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Requestin/TranslatorVoiceGame/internal/domain/check"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/vocab"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/config"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

// MaxUploadSize caps one recorded attempt at 10MB; a few seconds of webm
// audio is well under that.
const MaxUploadSize = 10 * 1024 * 1024

// Service exposes the practice game over HTTP: the landing page, the word
// catalog, and the pronunciation check endpoint.
type Service struct {
	logger  *logging.Logger
	config  *config.Config
	catalog *vocab.Catalog
	checker *check.Service
}

// NewService creates the game HTTP service.
func NewService(
	cfg *config.Config,
	catalog *vocab.Catalog,
	checker *check.Service,
	logger *logging.Logger,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "game.new", "config is required")
	}
	if catalog == nil {
		return nil, errors.New(errors.KindConfig, "game.new", "word catalog is required")
	}
	if checker == nil {
		return nil, errors.New(errors.KindConfig, "game.new", "check service is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "game.new", "logger is required")
	}

	return &Service{
		logger:  logger,
		config:  cfg,
		catalog: catalog,
		checker: checker,
	}, nil
}

// Register binds the game routes onto the engine.
func (s *Service) Register(ctx context.Context, engine *gin.Engine) error {
	engine.GET("/", s.handleHome)
	engine.GET("/words", s.handleWords)
	engine.POST("/check_answer", s.handleCheckAnswer)

	s.logger.InfoTag("HTTP", "game routes registered")
	return nil
}

// handleHome serves the landing page content verbatim.
func (s *Service) handleHome(c *gin.Context) {
	indexFile := s.config.Web.IndexFile
	if indexFile == "" {
		indexFile = "web/static/index.html"
	}

	page, err := os.ReadFile(indexFile)
	if err != nil {
		s.logger.ErrorTag("HTTP", "failed to read landing page %s: %v", indexFile, err)
		c.String(http.StatusInternalServerError, "landing page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// wordsResponse mirrors the contract the game client expects.
type wordsResponse struct {
	Words   []string          `json:"words"`
	Answers map[string]string `json:"answers"`
}

// handleWords returns the practice words in catalog order along with the
// translation mapping.
func (s *Service) handleWords(c *gin.Context) {
	c.JSON(http.StatusOK, wordsResponse{
		Words:   s.catalog.Words(),
		Answers: s.catalog.Translations(),
	})
}

// handleCheckAnswer accepts one multipart audio field and runs the check
// pipeline. Every handled outcome is HTTP 200; the client inspects the
// success flag. Upload parsing problems are converted to the same failure
// shape instead of a 4xx, keeping the client contract to a single branch.
func (s *Service) handleCheckAnswer(c *gin.Context) {
	input, err := s.readUpload(c)
	if err != nil {
		s.logger.WarnTag("HTTP", "check_answer upload rejected: %v", err)
		c.JSON(http.StatusOK, check.Result{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	result := s.checker.Check(c.Request.Context(), input)
	c.JSON(http.StatusOK, result)
}

func (s *Service) readUpload(c *gin.Context) (check.Input, error) {
	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		return check.Input{}, errors.Wrap(errors.KindTransport, "game.upload", "failed to parse multipart form", err)
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		return check.Input{}, errors.Wrap(errors.KindTransport, "game.upload", "audio file field is required", err)
	}
	defer file.Close()

	if header.Size > MaxUploadSize {
		return check.Input{}, errors.New(errors.KindTransport, "game.upload", "audio upload exceeds size limit")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return check.Input{}, errors.Wrap(errors.KindTransport, "game.upload", "failed to read audio upload", err)
	}

	return check.Input{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
