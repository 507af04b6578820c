package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	domainasr "github.com/Requestin/TranslatorVoiceGame/internal/domain/asr"
	asrinfra "github.com/Requestin/TranslatorVoiceGame/internal/domain/asr/infrastructure"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/asr/inter"
	domainaudio "github.com/Requestin/TranslatorVoiceGame/internal/domain/audio"
	domaincheck "github.com/Requestin/TranslatorVoiceGame/internal/domain/check"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/eventbus"
	"github.com/Requestin/TranslatorVoiceGame/internal/domain/vocab"
	platformconfig "github.com/Requestin/TranslatorVoiceGame/internal/platform/config"
	platformerrors "github.com/Requestin/TranslatorVoiceGame/internal/platform/errors"
	platformlogging "github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
	httptransport "github.com/Requestin/TranslatorVoiceGame/internal/transport/http"
	httpgame "github.com/Requestin/TranslatorVoiceGame/internal/transport/http/game"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config     *platformconfig.Config
	configPath string
	logger     *platformlogging.Logger
	asrManager *domainasr.Manager
	catalog    *vocab.Catalog
	checker    *domaincheck.Service
}

// Run starts the whole service lifecycle: configuration, logging, the
// recognition provider, the answer-check pipeline and the HTTP server, then
// blocks until shutdown.
func Run(ctx context.Context) error {
	state := &appState{}

	steps := InitGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}

	config := state.config
	logger := state.logger
	if config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}

	defer func() {
		eventbus.Shutdown()
		logger.Close()
	}()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return err
	}

	return waitForShutdown(signalCtx, cancel, logger, group)
}

// InitGraph declares the ordered bootstrap steps and their dependencies.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init",
			Title:     "Initialise logging",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "events:register",
			Title:     "Register event handlers",
			DependsOn: []string{"logging:init"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   registerEventHandlersStep,
		},
		{
			ID:        "asr:init-manager",
			Title:     "Initialise recognition provider",
			DependsOn: []string{"logging:init"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initASRStep,
		},
		{
			ID:        "domain:init-services",
			Title:     "Initialise catalog and check pipeline",
			DependsOn: []string{"logging:init", "asr:init-manager"},
			Kind:      platformerrors.KindDomain,
			Execute:   initDomainServicesStep,
		},
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"execute init steps",
			"nil bootstrap state",
		)
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(
				platformerrors.KindBootstrap,
				step.ID,
				"missing execute function",
			)
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "config:load", "failed to load configuration", err)
	}
	state.config = result.Config
	state.configPath = result.Path
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state.config == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "logging:init", "config not loaded")
	}

	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init", "failed to initialise logging", err)
	}

	state.logger = logger
	logger.InfoTag("BOOT", "logging ready [%s] config from %s", state.config.Log.Level, state.configPath)

	if state.config.ASR.APIKey == "" {
		logger.WarnTag("BOOT", "HF_TOKEN is not set; recognition requests will fail until it is provided")
	}

	return nil
}

func registerEventHandlersStep(_ context.Context, state *appState) error {
	if state.logger == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "events:register", "logger not initialised")
	}
	if err := eventbus.RegisterLogHandlers(state.logger); err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "events:register", "failed to register event handlers", err)
	}
	return nil
}

func initASRStep(_ context.Context, state *appState) error {
	if state.config == nil || state.logger == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "asr:init-manager", "missing config/logger")
	}

	asrConfig := inter.Config{
		Provider: state.config.ASR.Provider,
		Model:    state.config.ASR.Model,
		BaseURL:  state.config.ASR.BaseURL,
		APIKey:   state.config.ASR.APIKey,
		Timeout:  state.config.ASR.Timeout,
	}

	provider, err := asrinfra.NewProvider(asrConfig, state.logger)
	if err != nil {
		return err
	}

	manager := domainasr.NewManager(asrConfig)
	manager.SetProvider(provider)
	state.asrManager = manager

	state.logger.InfoTag("ASR", "recognition provider ready: %s (%s)", provider.Name(), asrConfig.Model)
	return nil
}

func initDomainServicesStep(_ context.Context, state *appState) error {
	if state.config == nil || state.logger == nil || state.asrManager == nil {
		return platformerrors.New(platformerrors.KindDomain, "domain:init-services", "missing dependencies")
	}

	state.catalog = vocab.Default()
	state.logger.InfoTag("VOCAB", "catalog loaded with %d words", state.catalog.Len())

	transcoder := domainaudio.NewTranscoder(state.config.Audio, state.logger)
	state.checker = domaincheck.NewService(domaincheck.Options{
		Transcoder:  transcoder,
		Transcriber: state.asrManager,
		TempDir:     state.config.Audio.TempDir,
		Logger:      state.logger,
	})

	return nil
}

func startHTTPServer(
	state *appState,
	g *errgroup.Group,
	groupCtx context.Context,
) (*http.Server, error) {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config: config,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	gameService, err := httpgame.NewService(config, state.catalog, state.checker, logger)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "game:new-service", "failed to create game service", err)
	}
	if err := gameService.Register(groupCtx, httpRouter.Engine); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "game:register", "failed to register game routes", err)
	}

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(config.Web.Port),
		Handler: httpRouter.Engine,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://localhost:%d", config.Web.Port)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "server shut down gracefully")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "server failed: %v", err)
			return err
		}
		return nil
	})

	return httpServer, nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
) error {
	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case <-ctx.Done():
		logger.InfoTag("BOOT", "shutdown signal received, cleaning up")
	case err := <-done:
		// The server stopped on its own, e.g. the port was already taken.
		if err != nil {
			logger.ErrorTag("BOOT", "service failed: %v", err)
			return err
		}
		return nil
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		logger.ErrorTag("BOOT", "shutdown timed out, forcing exit")
		return errors.New("shutdown timed out")
	}
	return nil
}
