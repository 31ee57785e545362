// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"

	"clubportal/internal/config"
)

// New returns a logger writing to w in the configured format.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}
	var h slog.Handler
	switch cfg.Format {
	case config.LogFormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Setup installs a logger built from cfg as the slog default and returns it.
func Setup(w io.Writer, cfg config.LogConfig) *slog.Logger {
	l := New(w, cfg)
	slog.SetDefault(l)
	return l
}
