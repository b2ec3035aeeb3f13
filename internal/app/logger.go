package app

import (
	"io"
	"log/slog"
)

// newLogger builds an isolated logger from the validated config. Plans are
// computed for one host mode, so every record carries it when set.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Mode != "" {
		logger = logger.With("host_mode", cfg.Mode)
	}
	return logger
}
