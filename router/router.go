// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/handlers"
	"github.com/android-cat/ChordProgressShare/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	progressionHandler := handlers.NewProgressionHandler(db, cfg)
	chordHandler := handlers.NewChordHandler()
	adminHandler := handlers.NewAdminHandler(db, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(db, cfg)

	// Public writes share one per-IP budget
	limiter := middleware.NewRateLimiter(cfg.SubmitRate, cfg.SubmitBurst, cfg.TrustProxy)
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(limiter.Wrap(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Published progressions (public)
	mux.HandleFunc("GET /api/progressions", middleware.WithLogging(progressionHandler.List))
	mux.HandleFunc("GET /api/progressions/{id}", middleware.WithLogging(progressionHandler.Get))
	mux.HandleFunc("GET /api/progressions/{id}/measures", middleware.WithLogging(progressionHandler.Measures))
	mux.HandleFunc("GET /api/progressions/{id}/schedule", middleware.WithLogging(progressionHandler.Schedule))

	// Submissions (public, rate limited)
	mux.HandleFunc("POST /api/progressions", limited(progressionHandler.Create))
	mux.HandleFunc("POST /api/progressions/{id}/edit", limited(progressionHandler.RequestEdit))
	mux.HandleFunc("POST /api/feedback", limited(feedbackHandler.Submit))

	// Chord picker
	mux.HandleFunc("GET /api/chord-options", middleware.WithLogging(chordHandler.Options))
	mux.HandleFunc("POST /api/chords/parse", middleware.WithLogging(chordHandler.Parse))
	mux.HandleFunc("POST /api/chords/build", middleware.WithLogging(chordHandler.Build))

	// Moderation (admin password required)
	mux.HandleFunc("GET /api/admin/pending", middleware.WithLogging(adminHandler.ListPending))
	mux.HandleFunc("GET /api/admin/pending/{id}/diff", middleware.WithLogging(adminHandler.Diff))
	mux.HandleFunc("POST /api/admin/pending/{id}", middleware.WithLogging(adminHandler.Process))
	mux.HandleFunc("GET /api/admin/blocked-ips", middleware.WithLogging(adminHandler.ListBlocked))
	mux.HandleFunc("POST /api/admin/blocked-ips", middleware.WithLogging(adminHandler.BlockIP))
	mux.HandleFunc("DELETE /api/admin/blocked-ips/{id}", middleware.WithLogging(adminHandler.UnblockIP))
	mux.HandleFunc("GET /api/admin/feedback", middleware.WithLogging(adminHandler.ListFeedback))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chord-share API v1"))
	})

	return middleware.CORS(cfg.CORSOrigin)(mux)
}
