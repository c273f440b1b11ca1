// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/android-cat/ChordProgressShare/auth"
	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/middleware"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/moderation"
	"github.com/android-cat/ChordProgressShare/store"
)

// AdminHandler serves the moderation queue and the block list. Every
// route requires the admin password.
type AdminHandler struct {
	workflow *moderation.Workflow
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{workflow: moderation.New(store.New(db), cfg.AdminPassword)}
}

// ListPending handles GET /api/admin/pending
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.workflow.ListPending(r.Context(), auth.AdminPasswordFromRequest(r))
	if err != nil {
		writeWorkflowError(w, err, "list pending")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// Diff handles GET /api/admin/pending/{id}/diff
func (h *AdminHandler) Diff(w http.ResponseWriter, r *http.Request) {
	diff, err := h.workflow.Diff(r.Context(), r.PathValue("id"), auth.AdminPasswordFromRequest(r))
	if err != nil {
		writeWorkflowError(w, err, "diff")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, diff)
}

// Process handles POST /api/admin/pending/{id}
func (h *AdminHandler) Process(w http.ResponseWriter, r *http.Request) {
	// An unreadable body leaves the action empty; Process still checks
	// the credential before rejecting it.
	var req models.AdminActionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		req = models.AdminActionRequest{}
	}

	resp, err := h.workflow.Process(r.Context(), r.PathValue("id"), req.Action, auth.AdminPasswordFromRequest(r))
	if err != nil {
		writeWorkflowError(w, err, "process")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListBlocked handles GET /api/admin/blocked-ips
func (h *AdminHandler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	list, err := h.workflow.ListBlocked(r.Context(), auth.AdminPasswordFromRequest(r))
	if err != nil {
		writeWorkflowError(w, err, "list blocked")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// BlockIP handles POST /api/admin/blocked-ips
func (h *AdminHandler) BlockIP(w http.ResponseWriter, r *http.Request) {
	var req models.BlockIPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		req = models.BlockIPRequest{}
	}

	b, err := h.workflow.BlockIP(r.Context(), req.IPAddress, req.Reason, auth.AdminPasswordFromRequest(r))
	if err != nil {
		writeWorkflowError(w, err, "block ip")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, b)
}

// UnblockIP handles DELETE /api/admin/blocked-ips/{id}
func (h *AdminHandler) UnblockIP(w http.ResponseWriter, r *http.Request) {
	if err := h.workflow.UnblockIP(r.Context(), r.PathValue("id"), auth.AdminPasswordFromRequest(r)); err != nil {
		writeWorkflowError(w, err, "unblock ip")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "IP unblocked"})
}

// ListFeedback handles GET /api/admin/feedback
func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := h.workflow.ListFeedback(r.Context(), auth.AdminPasswordFromRequest(r))
	if err != nil {
		writeWorkflowError(w, err, "list feedback")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}
