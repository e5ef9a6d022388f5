// internal/logging/logging.go
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a JSON logger writing to w at the given level and installs it as the default logger.
func New(w io.Writer, level string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	logLevel.Set(ParseLevel(level))

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
