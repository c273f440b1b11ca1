// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging builds the slog logger used by the server and CLI.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a slog.Logger backed by a charmbracelet/log handler writing
// to w (os.Stderr when nil). An unknown level falls back to info.
func New(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
	return slog.New(handler)
}

// Setup installs New(w, level) as the process-wide default logger.
func Setup(w io.Writer, level string) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)
	return logger
}
