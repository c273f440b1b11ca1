// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/middleware"
	"github.com/android-cat/ChordProgressShare/models"
)

// ChordHandler serves the chord picker tables and the token codec. It has
// no state.
type ChordHandler struct{}

func NewChordHandler() *ChordHandler {
	return &ChordHandler{}
}

// Options handles GET /api/chord-options
func (h *ChordHandler) Options(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, chord.GetOptions())
}

// Parse handles POST /api/chords/parse. Unrecognized input comes back as
// an empty token, not an error.
func (h *ChordHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req models.ParseChordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tok := chord.Parse(chord.NormalizeSlot(req.Chord))
	middleware.JSONResponse(w, http.StatusOK, models.ChordResponse{
		Chord: chord.Build(tok.Degree, tok.Quality, tok.Bass),
		Token: tok,
	})
}

// Build handles POST /api/chords/build
func (h *ChordHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req models.BuildChordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Degree != "" && !chord.IsDegree(req.Degree) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown degree")
		return
	}
	if req.Bass != "" && !chord.IsDegree(req.Bass) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown bass degree")
		return
	}
	if _, ok := chord.Suffix(req.Quality); req.Quality != "" && !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown quality")
		return
	}

	quality := req.Quality
	if quality == "" && req.Degree != "" {
		quality = chord.QualityMajor
	}
	built := chord.Build(req.Degree, quality, req.Bass)
	middleware.JSONResponse(w, http.StatusOK, models.ChordResponse{
		Chord: built,
		Token: chord.Parse(built),
	})
}
