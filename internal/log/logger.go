// Package log configures the process-wide slog setup and the field
// vocabulary shared by the server and the worker.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default slog logger for a binary. Format is "text"
// or "json"; level is parsed leniently and falls back to info.
func Setup(component, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(FieldComponent, component)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config string onto a slog level. Unknown values
// mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromEnv reads LOG_FORMAT and LOG_LEVEL and installs the default
// logger for the given component.
func FromEnv(component string) *slog.Logger {
	return Setup(component, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))
}
