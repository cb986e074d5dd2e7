package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alfredjeanlab/salesdash/internal/config"
)

// newLogger builds the process logger from the configured level and format.
// Logs go to stderr so command output on stdout stays clean.
func newLogger(cfg *config.Config) *slog.Logger {
	return buildLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

func buildLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
