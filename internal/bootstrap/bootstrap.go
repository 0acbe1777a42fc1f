// Package bootstrap owns the service lifecycle: configuration, logging,
// provider construction, HTTP serving and graceful shutdown.
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

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/app/services"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/asr"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/eventbus"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/glossary"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/translate"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/translate/google"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/translate/mymemory"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts"
	platformconfig "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/config"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	platformlogging "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
	httptransport "github.com/JOHAALETRADER/bot-traductor-audio/internal/transport/http"

	// Provider registration.
	_ "github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/asr/whisper"
	_ "github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts/edge"
	_ "github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts/elevenlabs"
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
	config      *platformconfig.Config
	configPath  string
	logProvider *platformlogging.Logger

	recognizerA asr.Recognizer
	recognizerB asr.Recognizer
	translator  *translate.Chain
	glossary    *glossary.Glossary
	synthesizer *tts.Chain
	normalizer  *tts.Normalizer
	pipeline    *services.Pipeline
}

// Run starts the whole service lifecycle: load configuration, build every
// provider, serve HTTP and shut down cleanly on SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	state := &appState{}

	if err := executeInitSteps(ctx, InitGraph(), state); err != nil {
		return err
	}

	config := state.config
	logger := state.logProvider
	if config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}
	if state.pipeline == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"pipeline not assembled",
		)
	}

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return fmt.Errorf("start http service: %w", err)
	}

	if err := waitForShutdown(signalCtx, cancel, logger, group); err != nil {
		return err
	}

	logger.InfoTag("BOOT", "service stopped")
	logger.Close()
	return nil
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

func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "providers:init-recognizers",
			Title:     "Initialise speech recognizers",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindRecognition,
			Execute:   initRecognizersStep,
		},
		{
			ID:        "providers:init-translators",
			Title:     "Initialise translation chain",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindTranslation,
			Execute:   initTranslatorsStep,
		},
		{
			ID:        "providers:init-synthesizers",
			Title:     "Initialise synthesis chain",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindSynthesis,
			Execute:   initSynthesizersStep,
		},
		{
			ID:    "pipeline:assemble",
			Title: "Assemble the processing pipeline",
			DependsOn: []string{
				"providers:init-recognizers",
				"providers:init-translators",
				"providers:init-synthesizers",
			},
			Kind:    platformerrors.KindBootstrap,
			Execute: assemblePipelineStep,
		},
	}
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
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"logging:init-provider",
			"config not loaded",
		)
	}

	logProvider, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to initialize logging provider", err)
	}

	state.logProvider = logProvider
	platformlogging.DefaultLogger = logProvider

	logProvider.InfoTag("BOOT", "logging ready [%s] %s", state.config.Log.Level, state.configPath)

	if err := eventbus.SetupEventHandlers(logProvider); err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to subscribe event handlers", err)
	}

	return nil
}

// unavailableRecognizer stands in when no speech backend is configured.
// Transcript-only requests keep working; audio requests degrade to empty
// hypotheses and surface as no-speech.
type unavailableRecognizer struct {
	language lang.Language
}

func (r *unavailableRecognizer) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", fmt.Errorf("no speech recognizer configured")
}

func (r *unavailableRecognizer) Language() lang.Language { return r.language }

func initRecognizersStep(_ context.Context, state *appState) error {
	whisperCfg := state.config.ASR.Whisper
	if whisperCfg.APIKey == "" {
		state.logProvider.WarnTag("ASR", "no whisper api key, audio uploads will be rejected")
		state.recognizerA = &unavailableRecognizer{language: lang.Spanish}
		state.recognizerB = &unavailableRecognizer{language: lang.English}
		return nil
	}

	for _, language := range []lang.Language{lang.Spanish, lang.English} {
		recognizer, err := asr.Create("whisper", &asr.Config{
			Type:     "whisper",
			Language: language,
			APIKey:   whisperCfg.APIKey,
			BaseURL:  whisperCfg.BaseURL,
			Model:    whisperCfg.Model,
			Timeout:  whisperCfg.Timeout,
		}, state.logProvider)
		if err != nil {
			return err
		}
		if language == lang.Spanish {
			state.recognizerA = recognizer
		} else {
			state.recognizerB = recognizer
		}
	}

	state.logProvider.InfoTag("ASR", "whisper recognizers ready (es, en)")
	return nil
}

func initTranslatorsStep(_ context.Context, state *appState) error {
	cfg := state.config.Translate

	primary := google.New(google.Config{
		BaseURL: cfg.Google.BaseURL,
		Timeout: cfg.Timeout,
	})
	secondary := mymemory.New(mymemory.Config{
		BaseURL: cfg.MyMemory.BaseURL,
		Email:   cfg.MyMemory.Email,
		Timeout: cfg.Timeout,
	})

	state.translator = translate.NewChain(state.logProvider, primary, secondary)
	state.logProvider.InfoTag("TRAD", "translation chain ready (google, mymemory)")
	return nil
}

func initSynthesizersStep(_ context.Context, state *appState) error {
	cfg := state.config.TTS
	var synthesizers []tts.Synthesizer

	// The paid voice joins the chain only with a complete credential pair;
	// a half-configured provider is treated as absent.
	if cfg.Eleven.APIKey != "" && cfg.Eleven.VoiceID != "" {
		eleven, err := tts.Create("elevenlabs", &tts.Config{
			Type:    "elevenlabs",
			APIKey:  cfg.Eleven.APIKey,
			VoiceID: cfg.Eleven.VoiceID,
			BaseURL: cfg.Eleven.BaseURL,
			ModelID: cfg.Eleven.ModelID,
		}, state.logProvider)
		if err != nil {
			return err
		}
		synthesizers = append(synthesizers, eleven)
	} else {
		state.logProvider.WarnTag("TTS", "elevenlabs credentials incomplete, using edge voices only")
	}

	edgeSynth, err := tts.Create("edge", &tts.Config{
		Type:         "edge",
		VoiceSpanish: cfg.Edge.VoiceSpanish,
		VoiceEnglish: cfg.Edge.VoiceEnglish,
	}, state.logProvider)
	if err != nil {
		return err
	}
	synthesizers = append(synthesizers, edgeSynth)

	state.synthesizer = tts.NewChain(state.logProvider, synthesizers...)
	state.normalizer = tts.NewNormalizer(cfg.Tempo.Factor, cfg.Tempo.FFmpeg, state.logProvider)
	state.logProvider.InfoTag("TTS", "synthesis chain ready (%d providers)", len(synthesizers))
	return nil
}

func assemblePipelineStep(_ context.Context, state *appState) error {
	gloss, err := glossary.New(state.config.Glossary.Enabled)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "pipeline:assemble", "failed to compile glossary", err)
	}
	state.glossary = gloss

	state.pipeline = services.NewPipeline(
		state.recognizerA,
		state.recognizerB,
		state.translator,
		state.glossary,
		state.synthesizer,
		state.normalizer,
		services.Options{
			Decision: lang.Options{
				Forced:         lang.Parse(state.config.Pipeline.ForcedLanguage),
				Default:        lang.Parse(state.config.Pipeline.DefaultLanguage),
				TieMargin:      state.config.Pipeline.TieMargin,
				ReinforceRatio: state.config.Pipeline.ReinforceRatio,
			},
			SimilarityThreshold: state.config.Pipeline.SimilarityThreshold,
			TempoFactor:         state.config.TTS.Tempo.Factor,
		},
		state.logProvider,
	)

	state.logProvider.InfoTag("BOOT", "pipeline assembled")
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) (*http.Server, error) {
	config := state.config
	logger := state.logProvider

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config: config,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	router := httpRouter.Engine
	apiGroup := httpRouter.API

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httptransport.APIResponse{
			Success: false,
			Data:    gin.H{},
			Message: "not found",
			Code:    http.StatusNotFound,
		})
	})

	translateService := httptransport.NewTranslateService(state.pipeline, logger)
	if err := translateService.Register(groupCtx, apiGroup); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "translate:register", "failed to register translate routes", err)
	}

	healthService := httptransport.NewHealthService(logger)
	if err := healthService.Register(groupCtx, apiGroup); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "health:register", "failed to register health routes", err)
	}

	httpServer := &http.Server{
		Addr:    config.Server.IP + ":" + strconv.Itoa(config.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "listening on http://%s", httpServer.Addr)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "http shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "http server closed")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "http serve failed: %v", err)
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
	<-ctx.Done()
	logger.InfoTag("BOOT", "shutdown signal received: %v", context.Cause(ctx))

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		logger.ErrorTag("BOOT", "shutdown timed out")
		return errors.New("shutdown timed out")
	}
	return nil
}
