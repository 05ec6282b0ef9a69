package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/config"
	"github.com/stemsi/admission-relay/internal/database"
	"github.com/stemsi/admission-relay/internal/handler"
	"github.com/stemsi/admission-relay/internal/logger"
	"github.com/stemsi/admission-relay/internal/middleware"
	"github.com/stemsi/admission-relay/internal/router"
	"github.com/stemsi/admission-relay/internal/service"
	"github.com/stemsi/admission-relay/internal/templates"
	"github.com/stemsi/admission-relay/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Bool("webhook_configured", cfg.WebhookURL != "").
		Dur("webhook_timeout", cfg.WebhookTimeout).
		Msg("Starting admission relay")

	if cfg.WebhookURL == "" {
		log.Warn().Msg("WEBHOOK_URL is not set, submissions will fail until it is configured")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Rate Limiter (Redis when configured) ──────────────────────────
	var (
		limiter middleware.Limiter = middleware.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateInterval)
		rdb     *redis.Client
	)
	if cfg.RedisURL != "" {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		limiter = middleware.NewRedisRateLimiter(rdb, cfg.SubmitRateLimit, cfg.SubmitRateInterval)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	relayService := service.NewRelayService(cfg, log)

	renderer, err := templates.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Relay:  handler.NewRelayHandler(relayService, log),
		Page:   handler.NewPageHandler(renderer, relayService, log),
		Health: handler.NewHealthHandler(cfg, rdb, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// In-flight relays get up to one webhook timeout to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.WebhookTimeout+time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
