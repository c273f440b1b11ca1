// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/android-cat/ChordProgressShare/middleware"
	"github.com/android-cat/ChordProgressShare/moderation"
)

// writeWorkflowError maps moderation errors to HTTP statuses. Anything
// unrecognized is logged and answered 500.
func writeWorkflowError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, moderation.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, detail(err, moderation.ErrValidation))
	case errors.Is(err, moderation.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin password")
	case errors.Is(err, moderation.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, detail(err, moderation.ErrNotFound))
	case errors.Is(err, moderation.ErrBlocked):
		middleware.ErrorResponse(w, http.StatusForbidden, "Submissions from this address are blocked")
	case errors.Is(err, moderation.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, detail(err, moderation.ErrConflict))
	default:
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == sentinel.Error() {
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
	return msg
}
