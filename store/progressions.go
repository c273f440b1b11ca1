// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/models"
)

// ListProgressions returns published progressions, newest first. query
// matches title or remarks; chordQuery matches the normalized chord column.
func (s *Store) ListProgressions(ctx context.Context, query, chordQuery string) ([]models.ProgressionSummary, error) {
	stmt := `
		SELECT id, title, remarks, created_at
		FROM progression
		WHERE 1 = 1`
	var args []any

	if query != "" {
		args = append(args, containsPattern(query))
		n := len(args)
		stmt += fmt.Sprintf(` AND (LOWER(title) LIKE LOWER($%d) ESCAPE '\' OR LOWER(remarks) LIKE LOWER($%d) ESCAPE '\')`, n, n)
	}
	if chordQuery != "" {
		if normalized := chord.NormalizeSearchQuery(chordQuery); normalized != "" {
			args = append(args, containsPattern(normalized))
			stmt += fmt.Sprintf(` AND LOWER(normalized_chords) LIKE LOWER($%d) ESCAPE '\'`, len(args))
		}
	}
	stmt += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query progressions: %w", err)
	}

	list := []models.ProgressionSummary{}
	for rows.Next() {
		var p models.ProgressionSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Remarks, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan progression: %w", err)
		}
		list = append(list, p)
	}
	// Release the connection before the per-row pattern queries
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read progressions: %w", err)
	}

	for i := range list {
		if list[i].Patterns, err = loadPatterns(ctx, s.db, list[i].ID); err != nil {
			return nil, err
		}
	}

	return list, nil
}

// GetProgression returns a published progression with patterns and songs.
func (s *Store) GetProgression(ctx context.Context, id string) (models.Progression, error) {
	return getProgression(ctx, s.db, id)
}

func getProgression(ctx context.Context, q querier, id string) (models.Progression, error) {
	var p models.Progression
	err := q.QueryRowContext(ctx, `
		SELECT id, title, remarks, normalized_chords, created_at, updated_at
		FROM progression
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Remarks, &p.NormalizedChords, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Progression{}, ErrNotFound
	}
	if err != nil {
		return models.Progression{}, fmt.Errorf("failed to query progression: %w", err)
	}
	p.Status = models.StatusApproved

	if p.Patterns, err = loadPatterns(ctx, q, p.ID); err != nil {
		return models.Progression{}, err
	}
	if p.Songs, err = loadSongs(ctx, q, p.ID); err != nil {
		return models.Progression{}, err
	}
	return p, nil
}

// ProgressionExists reports whether a published progression with id exists.
func (s *Store) ProgressionExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM progression WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check progression: %w", err)
	}
	return exists, nil
}

// DeleteProgression removes a published progression and its children.
func (s *Store) DeleteProgression(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"pattern", "song"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE progression_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete %s rows: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM progression WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete progression: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func searchString(patterns []models.Pattern) string {
	all := make([][]*string, len(patterns))
	for i, p := range patterns {
		all[i] = p.Chords
	}
	return chord.NormalizeForSearch(all)
}

// insertProgression publishes a submission as a new progression with the
// submission's ID.
func insertProgression(ctx context.Context, q querier, sub models.Submission) error {
	now := utcNow()
	_, err := q.ExecContext(ctx, `
		INSERT INTO progression (id, title, remarks, normalized_chords, ip_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sub.ID, sub.Title, sub.Remarks, searchString(sub.Patterns), sub.IPAddress, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert progression: %w", err)
	}
	return insertChildren(ctx, q, sub.ID, sub.Patterns, sub.Songs)
}

// replaceProgression overwrites the mutable fields of progression id with
// the submission's content. id and created_at are kept.
func replaceProgression(ctx context.Context, q querier, id string, sub models.Submission) error {
	res, err := q.ExecContext(ctx, `
		UPDATE progression
		SET title = $1, remarks = $2, normalized_chords = $3, updated_at = $4
		WHERE id = $5
	`, sub.Title, sub.Remarks, searchString(sub.Patterns), utcNow(), id)
	if err != nil {
		return fmt.Errorf("failed to update progression: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrOriginalNotFound
	}

	for _, table := range []string{"pattern", "song"} {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE progression_id = $1", id); err != nil {
			return fmt.Errorf("failed to clear %s rows: %w", table, err)
		}
	}
	return insertChildren(ctx, q, id, sub.Patterns, sub.Songs)
}
