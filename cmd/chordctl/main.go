// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command chordctl moderates a chord-share database from the terminal.
// It reads the same .env, environment and TOML settings as the server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/db"
	"github.com/android-cat/ChordProgressShare/logging"
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		logging.New(nil, "info").Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := cliparse.ParseFlags(nil)
	if err != nil {
		logging.New(nil, "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(nil, cfg.LogLevel)

	conn, err := db.Open(cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	runner := NewRunner(RunnerOpts{DB: conn, Config: cfg})

	app := &cli.Command{
		Name:     "chordctl",
		Usage:    "Moderate chord progression submissions",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Error("command failed", "error", err)
		stop()
		conn.Close()
		os.Exit(1)
	}
}
