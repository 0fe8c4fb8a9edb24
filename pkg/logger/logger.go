package logger

import (
	"log/slog"
	"os"
	"strings"
)

// HandlerFunc builds a slog.Handler for a level.
type HandlerFunc func(level slog.Level) slog.Handler

func New(level string, handler HandlerFunc) *slog.Logger {
	h := handler(getSlogLevel(level))
	return slog.New(h)
}

// ForFormat picks the handler for LOGFORMAT: "text" for local runs and the
// CLI, anything else for Cloud Run structured JSON.
func ForFormat(format string) HandlerFunc {
	switch strings.ToLower(format) {
	case "text":
		return NewTextHandler
	default:
		return NewCloudRunHandler
	}
}

func NewTextHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}

// ---- Helpers ----
func getSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
