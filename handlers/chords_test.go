// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/testutil"
)

func TestChordOptions(t *testing.T) {
	handler := NewChordHandler()

	req := httptest.NewRequest("GET", "/api/chord-options", nil)
	w := httptest.NewRecorder()
	handler.Options(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var opts chord.Options
	testutil.AssertJSON(t, w, &opts)
	if len(opts.DegreeSymbols) != 17 {
		t.Errorf("Expected 17 degree symbols, got %d", len(opts.DegreeSymbols))
	}
	if len(opts.QualitySymbols) != 18 {
		t.Errorf("Expected 18 qualities, got %d", len(opts.QualitySymbols))
	}
	if opts.SlotsPerPattern != 16 {
		t.Errorf("Expected 16 slots, got %d", opts.SlotsPerPattern)
	}
}

func TestParseChord(t *testing.T) {
	handler := NewChordHandler()

	str := func(s string) *string { return &s }

	testCases := []struct {
		name     string
		input    *string
		expected *string
		degree   chord.Degree
	}{
		{"plain", str("IV"), str("IV"), "IV"},
		{"slash chord", str("IVmaj7/V"), str("IVmaj7/V"), "IV"},
		{"lower case numeral", str("bvii7"), str("bVII7"), "bVII"},
		{"full width", str("♭Ⅵ"), str("bVI"), "bVI"},
		{"garbage", str("hello"), nil, ""},
		{"null", nil, nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/chords/parse", models.ParseChordRequest{Chord: tc.input}, nil)
			w := httptest.NewRecorder()
			handler.Parse(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.ChordResponse
			testutil.AssertJSON(t, w, &resp)

			if tc.expected == nil {
				if resp.Chord != nil {
					t.Errorf("Expected null chord, got %q", *resp.Chord)
				}
			} else if resp.Chord == nil || *resp.Chord != *tc.expected {
				t.Errorf("Expected chord %q, got %v", *tc.expected, resp.Chord)
			}
			if resp.Token.Degree != tc.degree {
				t.Errorf("Expected degree %q, got %q", tc.degree, resp.Token.Degree)
			}
		})
	}
}

func TestBuildChord(t *testing.T) {
	handler := NewChordHandler()

	testCases := []struct {
		name     string
		req      models.BuildChordRequest
		status   int
		expected string
	}{
		{"major", models.BuildChordRequest{Degree: "V"}, http.StatusOK, "V"},
		{"minor seventh over bass", models.BuildChordRequest{Degree: "II", Quality: chord.QualityMinorSeventh, Bass: "V"}, http.StatusOK, "IIm7/V"},
		{"unknown degree", models.BuildChordRequest{Degree: "VIII"}, http.StatusBadRequest, ""},
		{"unknown quality", models.BuildChordRequest{Degree: "I", Quality: "m13"}, http.StatusBadRequest, ""},
		{"unknown bass", models.BuildChordRequest{Degree: "I", Bass: "X"}, http.StatusBadRequest, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/chords/build", tc.req, nil)
			w := httptest.NewRecorder()
			handler.Build(w, req)

			testutil.AssertStatus(t, w, tc.status)
			if tc.status != http.StatusOK {
				return
			}
			var resp models.ChordResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Chord == nil || *resp.Chord != tc.expected {
				t.Errorf("Expected %q, got %v", tc.expected, resp.Chord)
			}
		})
	}

	t.Run("empty degree is no chord", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/chords/build", models.BuildChordRequest{}, nil)
		w := httptest.NewRecorder()
		handler.Build(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ChordResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Chord != nil {
			t.Errorf("Expected null chord, got %q", *resp.Chord)
		}
	})
}
