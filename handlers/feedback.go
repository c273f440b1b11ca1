// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/middleware"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/moderation"
	"github.com/android-cat/ChordProgressShare/store"
)

type FeedbackHandler struct {
	workflow   *moderation.Workflow
	trustProxy bool
}

func NewFeedbackHandler(db *sql.DB, cfg cliparse.Config) *FeedbackHandler {
	return &FeedbackHandler{
		workflow:   moderation.New(store.New(db), cfg.AdminPassword),
		trustProxy: cfg.TrustProxy,
	}
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if _, err := h.workflow.SubmitFeedback(r.Context(), req.Content, middleware.GetClientIP(r, h.trustProxy)); err != nil {
		writeWorkflowError(w, err, "submit feedback")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "Thank you for your feedback"})
}
