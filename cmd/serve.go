package main

import (
	"context"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/latestcomment/headline-bias-game/internal/handlers"
	"github.com/latestcomment/headline-bias-game/internal/services"
)

func newLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func Serve(ctx context.Context, cfg *Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	facts, err := services.NewFactService(services.DefaultFacts)
	if cfg.factsFile != "" {
		facts, err = services.LoadFacts(cfg.factsFile)
	}
	if err != nil {
		return err
	}

	ai := services.NewAIService(services.AIConfig{
		BaseURL:     cfg.baseURL,
		APIKey:      cfg.apiKey,
		Model:       cfg.model,
		MaxTokens:   cfg.maxTokens,
		Temperature: cfg.temperature,
		HTTPClient:  &http.Client{Timeout: cfg.generationTimeout + 5*time.Second},
	})
	headlines := services.NewHeadlineService(ai, cfg.generationTimeout, log)
	rounds := services.NewRoundService(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	game := services.NewGameService(services.NewSessionRegistry(nil), facts, headlines, rounds, log)

	app := handlers.NewApp(log)
	app.Use(logger.New())
	handlers.Register(app, handlers.NewHandler(game, releaseVersion), handlers.NewWebSocketHandler(game, log))

	addr := net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port))
	errs := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", addr),
			zap.String("version", releaseVersion),
			zap.String("model", cfg.model),
		)
		errs <- app.Listen(addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
