// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the chord progression sharing API.

# Route Registration

NewRouter returns the full handler, CORS included:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Progressions (public):

	GET  /api/progressions                 - List, ?query= and ?chord_query=
	GET  /api/progressions/{id}            - Progression with patterns and songs
	GET  /api/progressions/{id}/measures   - Measure layout per pattern
	GET  /api/progressions/{id}/schedule   - Playback steps, ?bpm= and ?pattern=
	POST /api/progressions                 - Submit a new progression
	POST /api/progressions/{id}/edit       - Submit an edit request
	POST /api/feedback                     - Site feedback

The three POST routes are rate limited per client IP.

Chord picker:

	GET  /api/chord-options
	POST /api/chords/parse
	POST /api/chords/build

Moderation (X-Admin-Password header or admin_password query):

	GET    /api/admin/pending            - Pending queue, oldest first
	GET    /api/admin/pending/{id}/diff  - Submission beside its original
	POST   /api/admin/pending/{id}       - {"action": "approve" | "reject"}
	GET    /api/admin/blocked-ips
	POST   /api/admin/blocked-ips        - {"ip_address", "reason"}
	DELETE /api/admin/blocked-ips/{id}
	GET    /api/admin/feedback
*/
package router
