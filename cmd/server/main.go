package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/config"
	"github.com/jomadlcrz/class-schedule-backend/internal/database"
	"github.com/jomadlcrz/class-schedule-backend/internal/handler"
	"github.com/jomadlcrz/class-schedule-backend/internal/logger"
	"github.com/jomadlcrz/class-schedule-backend/internal/repository"
	"github.com/jomadlcrz/class-schedule-backend/internal/router"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
	"github.com/jomadlcrz/class-schedule-backend/internal/validator"
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
		Msg("Starting Class Schedule Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Course List Cache ─────────────────────────────────────────────
	// Redis when configured, in-process fallback otherwise. Same TTL.
	var listCache service.ListCache
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		listCache = service.NewRedisListCache(rdb, cfg.CourseCacheTTL, log)
	} else {
		log.Info().Dur("ttl", cfg.CourseCacheTTL).Msg("REDIS_URL not set, using in-process course cache")
		listCache = service.NewMemoryListCache(cfg.CourseCacheTTL)
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	preferenceRepo := repository.NewPreferenceRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	verifier := service.NewVerifier(cfg, log)
	courseService := service.NewCourseService(courseRepo, listCache, log)
	preferenceService := service.NewPreferenceService(preferenceRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Course:  handler.NewCourseHandler(courseService, log),
		Session: handler.NewSessionHandler(preferenceService, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(verifier, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
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
