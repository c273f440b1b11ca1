// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the chord progression
sharing API.

# Handler Types

Each handler is a struct built from the database and config:

  - ProgressionHandler: browse, search, measure layout, playback schedule,
    and new posts and edit requests
  - ChordHandler: picker option tables and the chord token codec
  - AdminHandler: moderation queue and IP block list
  - FeedbackHandler: site feedback

	progressionHandler := handlers.NewProgressionHandler(db, cfg)

# Submissions

Nothing a visitor posts is published directly:

	POST /api/progressions           -> pending new post
	POST /api/progressions/{id}/edit -> pending edit request
	POST /api/admin/pending/{id}     -> {"action": "approve"} or "reject"

Approving an edit request overwrites the original in place.

# Errors

Workflow errors map to statuses in one place (writeWorkflowError):

	ErrValidation   400
	ErrUnauthorized 401
	ErrBlocked      403
	ErrNotFound     404
	ErrConflict     409

Admin routes read the password from the X-Admin-Password header or the
admin_password query parameter.
*/
package handlers
