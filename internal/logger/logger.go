// Package logger builds the process-wide slog logger. Both binaries log JSON
// to stdout and stamp every line with the service name and environment, so
// API and worker logs can be correlated in one stream.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cashflow-dev/cashflow-backend/internal/config"
)

// NewLogger creates and configures a new slog.Logger from the config
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		// Source locations are only worth the log volume when debugging
		AddSource: level == slog.LevelDebug,
	})

	logger := slog.New(handler).With(
		"service", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	logger.Info("Logger initialized", "level", level.String())

	return logger
}

// parseLevel maps the configured level string to a slog level, defaulting to
// info for anything unrecognized
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
