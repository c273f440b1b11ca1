// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the durable store behind the moderation workflow.

All SQL uses $N placeholders and application-supplied timestamps so it
runs unchanged on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

# Submissions

A submission row carries its title and status as columns and the rest of
the content (remarks, patterns, songs) as a JSON payload. Status moves
from pending to approved or rejected exactly once:

	UPDATE submission SET status = ?, resolved_at = ?
	WHERE id = ? AND status = 'pending'

ApproveSubmission runs that update and the publication in one
transaction, so a failed publication leaves the submission pending, and a
second approve or reject of the same id affects no row and returns
ErrNotFound.

# Errors

  - ErrNotFound: no such row, or the submission is no longer pending
  - ErrDuplicate: the address is already on the block list
  - ErrOriginalNotFound: an edit request targets a deleted progression
*/
package store
