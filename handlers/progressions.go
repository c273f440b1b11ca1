// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/android-cat/ChordProgressShare/auth"
	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/middleware"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/moderation"
	"github.com/android-cat/ChordProgressShare/playback"
	"github.com/android-cat/ChordProgressShare/store"
)

type ProgressionHandler struct {
	store    *store.Store
	workflow *moderation.Workflow
	cfg      cliparse.Config
}

func NewProgressionHandler(db *sql.DB, cfg cliparse.Config) *ProgressionHandler {
	st := store.New(db)
	return &ProgressionHandler{
		store:    st,
		workflow: moderation.New(st, cfg.AdminPassword),
		cfg:      cfg,
	}
}

// List handles GET /api/progressions
func (h *ProgressionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.store.ListProgressions(r.Context(), q.Get("query"), q.Get("chord_query"))
	if err != nil {
		slog.Error("failed to list progressions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// Get handles GET /api/progressions/{id}
func (h *ProgressionHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// Measures handles GET /api/progressions/{id}/measures
func (h *ProgressionHandler) Measures(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	out := make([]models.PatternMeasures, len(p.Patterns))
	for i, pat := range p.Patterns {
		out[i] = models.PatternMeasures{
			PatternID: pat.ID,
			Label:     pat.Label,
			Measures:  chord.Measures(pat.Chords),
		}
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Schedule handles GET /api/progressions/{id}/schedule?bpm=&pattern=
func (h *ProgressionHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	bpm := playback.DefaultBPM
	if raw := r.URL.Query().Get("bpm"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "bpm must be an integer")
			return
		}
		bpm = playback.ClampBPM(n)
	}

	index := 0
	if raw := r.URL.Query().Get("pattern"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "pattern must be a non-negative integer")
			return
		}
		index = n
	}

	p, ok := h.load(w, r)
	if !ok {
		return
	}
	if index >= len(p.Patterns) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pattern index out of range")
		return
	}

	pat := p.Patterns[index]
	steps, total := playback.Schedule(pat.Chords, bpm)
	middleware.JSONResponse(w, http.StatusOK, models.ScheduleResponse{
		PatternID:  pat.ID,
		BPM:        bpm,
		DurationMS: total,
		Steps:      steps,
	})
}

// Create handles POST /api/progressions
func (h *ProgressionHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, nil)
}

// RequestEdit handles POST /api/progressions/{id}/edit
func (h *ProgressionHandler) RequestEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	h.submit(w, r, &id)
}

func (h *ProgressionHandler) submit(w http.ResponseWriter, r *http.Request, originalID *string) {
	var req models.ProgressionPayload
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ip := middleware.GetClientIP(r, h.cfg.TrustProxy)
	sub, err := h.workflow.Submit(r.Context(), req, originalID, ip)
	if err != nil {
		if errors.Is(err, moderation.ErrBlocked) {
			slog.Warn("blocked submission", "ip_hash", auth.HashIP(ip, h.cfg.AdminPassword))
		}
		writeWorkflowError(w, err, "submit")
		return
	}

	// The submitter's address is for moderators only
	sub.IPAddress = ""
	middleware.JSONResponse(w, http.StatusCreated, sub)
}

func (h *ProgressionHandler) load(w http.ResponseWriter, r *http.Request) (models.Progression, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return models.Progression{}, false
	}

	p, err := h.store.GetProgression(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Progression not found")
		return models.Progression{}, false
	}
	if err != nil {
		slog.Error("failed to load progression", "progression_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Progression{}, false
	}
	return p, true
}
