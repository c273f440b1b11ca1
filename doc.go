// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the chord-share API server.

Chord-share is a moderated catalogue of chord progressions written in
scale degrees (I, IV, bVII, ...). Anyone may submit a progression or an
edit to a published one; nothing appears until an administrator approves
it.

# Starting the Server

With no configuration the server uses a local SQLite file:

	ADMIN_PASSWORD=secret go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -admin-password secret

# Configuration

Settings are read from flags, then environment variables (a .env file is
loaded if present), then the TOML file named by -c or CONFIG_FILE:

  - ADMIN_PASSWORD (-admin-password): required
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string, required for postgres
  - PORT (-p): server port (default 8000)
  - CORS_ORIGIN (-cors-origin): allowed origin, "*" reflects the caller
  - SUBMIT_RATE_PER_MINUTE, SUBMIT_BURST: per-IP submission limit
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - chord: chord token codec, notation normalization, measure layout
  - moderation: submission workflow and block list
  - store: SQL persistence for PostgreSQL and SQLite
  - playback: tempo schedule and step sequencer
  - handlers, router, middleware: HTTP surface
  - models: request/response and domain types
  - auth: IDs and admin password check
  - db: connection and schema
  - cliparse, logging: configuration and slog setup

The cmd/chordctl command moderates the same database from a terminal.
*/
package main
