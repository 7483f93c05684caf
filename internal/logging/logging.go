// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
)

// New builds a JSON slog.Logger writing to stderr, with level given by
// levelName (debug, info, warn, error; anything else means info).
func New(levelName string) *slog.Logger {
	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
