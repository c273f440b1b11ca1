// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/android-cat/ChordProgressShare/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := cfg.DatabaseType, cfg.DatabaseURL
	if driver == cliparse.DatabaseSQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	// SQLite allows one writer; a single connection serializes
	// transactions instead of failing with SQLITE_BUSY.
	if driver == cliparse.DatabaseSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// DropSchema removes every table. Used by tests and `chordctl schema --reset`.
func DropSchema(db *sql.DB) error {
	for _, table := range []string{"feedback", "blocked_ip", "submission", "song", "pattern", "progression"} {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// Timestamps are written by the application in UTC so the same SQL runs on
// both PostgreSQL and SQLite.
const schema = `
-- Published progressions
CREATE TABLE IF NOT EXISTS progression (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    remarks TEXT NOT NULL DEFAULT '',
    normalized_chords TEXT NOT NULL DEFAULT '',
    ip_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_progression_created_at ON progression(created_at);

-- Patterns (16 slots stored as a JSON array)
CREATE TABLE IF NOT EXISTS pattern (
    id TEXT PRIMARY KEY,
    progression_id TEXT NOT NULL REFERENCES progression(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    chords TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_pattern_progression_id ON pattern(progression_id);

-- Songs using the progression
CREATE TABLE IF NOT EXISTS song (
    id TEXT PRIMARY KEY,
    progression_id TEXT NOT NULL REFERENCES progression(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    artist TEXT NOT NULL DEFAULT '',
    youtube_url TEXT NOT NULL DEFAULT '',
    spotify_url TEXT NOT NULL DEFAULT '',
    apple_music_url TEXT NOT NULL DEFAULT '',
    sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_song_progression_id ON song(progression_id);

-- Submissions awaiting moderation
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    original_id TEXT,
    title TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
    payload TEXT NOT NULL,
    ip_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    resolved_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_submission_status ON submission(status, created_at);

-- Blocked submitter addresses
CREATE TABLE IF NOT EXISTS blocked_ip (
    id TEXT PRIMARY KEY,
    ip_address TEXT NOT NULL UNIQUE,
    reason TEXT NOT NULL DEFAULT '',
    blocked_at TIMESTAMP NOT NULL
);

-- Site feedback
CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    ip_address TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);
`
