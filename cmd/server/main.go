// Package main implements the entry point for the lexmem collaborator
// server: the HTTP API that owns vocabulary learning state, runs the
// scheduling arithmetic, and generates and scores quizzes.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelar/lexmem/internal/api"
	"github.com/avelar/lexmem/internal/config"
	"github.com/avelar/lexmem/internal/domain/srs"
	"github.com/avelar/lexmem/internal/platform/logger"
	"github.com/avelar/lexmem/internal/platform/memstore"
	"github.com/avelar/lexmem/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires the application, and serves until a
// shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	router, err := buildRouter(cfg, appLogger)
	if err != nil {
		return err
	}

	return serve(cfg, appLogger, router)
}

// buildRouter seeds the in-memory stores and assembles the services and
// HTTP handlers.
func buildRouter(cfg *config.Config, log *slog.Logger) (http.Handler, error) {
	words := memstore.NewWordStore(time.Now().UnixNano())
	if err := memstore.Seed(words, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to seed word catalog: %w", err)
	}
	sessions := memstore.NewQuizSessionStore()

	srsService := srs.NewServiceWithParams(&srs.Params{
		MinEaseFactor:      cfg.SRS.MinEaseFactor,
		FirstPassInterval:  cfg.SRS.FirstPassInterval,
		SecondPassInterval: cfg.SRS.SecondPassInterval,
		LapseInterval:      cfg.SRS.LapseInterval,
		MaxInterval:        cfg.SRS.MaxIntervalDays,
	})

	reviewHandler := api.NewReviewHandler(
		service.NewReviewService(words, srsService, log), log)
	quizHandler := api.NewQuizHandler(
		service.NewQuizService(words, sessions, cfg.Quiz, log), log)

	return api.NewRouter(reviewHandler, quizHandler), nil
}

// serve runs the HTTP server with graceful shutdown on SIGINT/SIGTERM.
func serve(cfg *config.Config, log *slog.Logger, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case sig := <-shutdownCh:
		log.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server shutdown completed")
	return nil
}
