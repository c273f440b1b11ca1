// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/android-cat/ChordProgressShare/models"
)

// IsBlocked reports whether ip is on the block list.
func (s *Store) IsBlocked(ctx context.Context, ip string) (bool, error) {
	var blocked bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM blocked_ip WHERE ip_address = $1)
	`, ip).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("failed to check blocked ip: %w", err)
	}
	return blocked, nil
}

// CreateBlockedIP adds b to the block list. It returns ErrDuplicate if the
// address is already blocked; the UNIQUE constraint settles races.
func (s *Store) CreateBlockedIP(ctx context.Context, b models.BlockedIP) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blocked_ip (id, ip_address, reason, blocked_at)
		VALUES ($1, $2, $3, $4)
	`, b.ID, b.IPAddress, b.Reason, b.BlockedAt.UTC())
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert blocked ip: %w", err)
	}
	return nil
}

// ListBlockedIPs returns the block list, most recent first.
func (s *Store) ListBlockedIPs(ctx context.Context) ([]models.BlockedIP, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ip_address, reason, blocked_at
		FROM blocked_ip
		ORDER BY blocked_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked ips: %w", err)
	}
	defer rows.Close()

	list := []models.BlockedIP{}
	for rows.Next() {
		var b models.BlockedIP
		if err := rows.Scan(&b.ID, &b.IPAddress, &b.Reason, &b.BlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocked ip: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// DeleteBlockedIP removes a block list entry by ID.
func (s *Store) DeleteBlockedIP(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blocked_ip WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blocked ip: %w", err)
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

// CreateFeedback stores a feedback message.
func (s *Store) CreateFeedback(ctx context.Context, f models.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, content, ip_address, created_at)
		VALUES ($1, $2, $3, $4)
	`, f.ID, f.Content, f.IPAddress, f.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// ListFeedback returns feedback, most recent first.
func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, ip_address, created_at
		FROM feedback
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	list := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.Content, &f.IPAddress, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
