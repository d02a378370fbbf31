// Package logger provides structured logging functionality for the
// application, including context-carried loggers for request-scoped
// attributes.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/avelar/lexmem/internal/config"
)

// contextKey is the private type for context values owned by this package.
type contextKey struct{}

// loggerKey is the context key under which a request-scoped logger travels.
var loggerKey = contextKey{}

// Setup initializes the application's logging system from configuration.
// It creates a structured JSON logger at the configured level, sets it as
// the process default, and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}

// WithLogger returns a context carrying the given logger. Handlers attach a
// logger enriched with request attributes so downstream components log with
// the same correlation fields.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger carried by ctx, or nil if none is set.
func FromContext(ctx context.Context) *slog.Logger {
	log, _ := ctx.Value(loggerKey).(*slog.Logger)
	return log
}

// FromContextOrDefault retrieves the logger carried by ctx, falling back to
// the provided default when the context has none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log := FromContext(ctx); log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
