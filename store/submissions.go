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

	"github.com/android-cat/ChordProgressShare/models"
)

// submissionPayload is the JSON stored in submission.payload.
type submissionPayload struct {
	Remarks  string           `json:"remarks"`
	Patterns []models.Pattern `json:"patterns"`
	Songs    []models.Song    `json:"songs"`
}

// CreateSubmission stores sub as pending. ID and CreatedAt must be set.
func (s *Store) CreateSubmission(ctx context.Context, sub models.Submission) error {
	payload, err := json.Marshal(submissionPayload{
		Remarks:  sub.Remarks,
		Patterns: sub.Patterns,
		Songs:    sub.Songs,
	})
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO submission (id, original_id, title, status, payload, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sub.ID, sub.OriginalID, sub.Title, models.StatusPending, string(payload), sub.IPAddress, sub.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

const submissionColumns = `id, original_id, title, status, payload, ip_address, created_at, resolved_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (models.Submission, error) {
	var sub models.Submission
	var originalID sql.NullString
	var resolvedAt sql.NullTime
	var raw string

	if err := row.Scan(&sub.ID, &originalID, &sub.Title, &sub.Status, &raw, &sub.IPAddress, &sub.CreatedAt, &resolvedAt); err != nil {
		return models.Submission{}, err
	}

	var payload submissionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return models.Submission{}, fmt.Errorf("failed to decode submission %s: %w", sub.ID, err)
	}
	sub.Remarks = payload.Remarks
	sub.Patterns = payload.Patterns
	sub.Songs = payload.Songs
	if sub.Patterns == nil {
		sub.Patterns = []models.Pattern{}
	}
	if sub.Songs == nil {
		sub.Songs = []models.Song{}
	}

	if originalID.Valid {
		id := originalID.String
		sub.OriginalID = &id
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		sub.ResolvedAt = &t
	}
	return sub, nil
}

// ListSubmissions returns submissions with the given status, oldest first.
func (s *Store) ListSubmissions(ctx context.Context, status string) ([]models.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submission
		WHERE status = $1
		ORDER BY created_at ASC, id
	`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	list := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		list = append(list, sub)
	}
	return list, rows.Err()
}

// GetPendingSubmission returns the submission only while it is pending.
func (s *Store) GetPendingSubmission(ctx context.Context, id string) (models.Submission, error) {
	return getSubmission(ctx, s.db, id, models.StatusPending)
}

func getSubmission(ctx context.Context, q querier, id, status string) (models.Submission, error) {
	sub, err := scanSubmission(q.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submission
		WHERE id = $1 AND status = $2
	`, id, status))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to query submission: %w", err)
	}
	return sub, nil
}

// transition moves submission id from pending to status. The UPDATE is
// conditional on the current status, so of two concurrent callers exactly
// one sees a row affected; the other gets ErrNotFound.
func transition(ctx context.Context, tx *sql.Tx, id, status string, at time.Time) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE submission
		SET status = $1, resolved_at = $2
		WHERE id = $3 AND status = $4
	`, status, at, id, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ApproveSubmission publishes a pending submission in one transaction.
// A new post becomes a progression with the submission's ID; an edit
// request overwrites its original in place. It returns the ID of the
// published progression.
func (s *Store) ApproveSubmission(ctx context.Context, id string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := transition(ctx, tx, id, models.StatusApproved, utcNow()); err != nil {
		return "", err
	}

	sub, err := getSubmission(ctx, tx, id, models.StatusApproved)
	if err != nil {
		return "", err
	}

	publishedID := sub.ID
	if sub.OriginalID != nil {
		publishedID = *sub.OriginalID
		err = replaceProgression(ctx, tx, publishedID, sub)
	} else {
		err = insertProgression(ctx, tx, sub)
	}
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit approval: %w", err)
	}
	return publishedID, nil
}

// RejectSubmission discards a pending submission.
func (s *Store) RejectSubmission(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := transition(ctx, tx, id, models.StatusRejected, utcNow()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rejection: %w", err)
	}
	return nil
}
