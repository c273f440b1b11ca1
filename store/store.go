// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/android-cat/ChordProgressShare/auth"
	"github.com/android-cat/ChordProgressShare/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrOriginalNotFound = errors.New("original progression not found")
)

// Store is the durable store for progressions, submissions, the IP block
// list and feedback.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isUniqueViolation recognizes unique constraint errors from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func encodeChords(chords []*string) (string, error) {
	b, err := json.Marshal(chords)
	if err != nil {
		return "", fmt.Errorf("failed to encode chords: %w", err)
	}
	return string(b), nil
}

func decodeChords(raw string) ([]*string, error) {
	var chords []*string
	if err := json.Unmarshal([]byte(raw), &chords); err != nil {
		return nil, fmt.Errorf("failed to decode chords: %w", err)
	}
	return chords, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// insertChildren writes patterns and songs for a progression, assigning
// fresh IDs and sort order.
func insertChildren(ctx context.Context, q querier, progressionID string, patterns []models.Pattern, songs []models.Song) error {
	for i, p := range patterns {
		chords, err := encodeChords(p.Chords)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO pattern (id, progression_id, label, chords, sort_order)
			VALUES ($1, $2, $3, $4, $5)
		`, auth.GenerateID(), progressionID, p.Label, chords, i)
		if err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
	}

	for i, s := range songs {
		_, err := q.ExecContext(ctx, `
			INSERT INTO song (id, progression_id, name, artist, youtube_url, spotify_url, apple_music_url, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, auth.GenerateID(), progressionID, s.Name, s.Artist, s.YoutubeURL, s.SpotifyURL, s.AppleMusicURL, i)
		if err != nil {
			return fmt.Errorf("failed to insert song: %w", err)
		}
	}

	return nil
}

func loadPatterns(ctx context.Context, q querier, progressionID string) ([]models.Pattern, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, label, chords, sort_order
		FROM pattern
		WHERE progression_id = $1
		ORDER BY sort_order
	`, progressionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	patterns := []models.Pattern{}
	for rows.Next() {
		var p models.Pattern
		var raw string
		if err := rows.Scan(&p.ID, &p.Label, &raw, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		if p.Chords, err = decodeChords(raw); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func loadSongs(ctx context.Context, q querier, progressionID string) ([]models.Song, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, artist, youtube_url, spotify_url, apple_music_url
		FROM song
		WHERE progression_id = $1
		ORDER BY sort_order
	`, progressionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		var s models.Song
		if err := rows.Scan(&s.ID, &s.Name, &s.Artist, &s.YoutubeURL, &s.SpotifyURL, &s.AppleMusicURL); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}
