// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/testutil"
)

// TestFullModerationWorkflow tests the complete end-to-end workflow:
// 1. Visitor submits a progression
// 2. It is not visible until approved
// 3. Admin approves it
// 4. Visitor requests an edit
// 5. Admin reviews the diff and approves
// 6. The published progression carries the edit under the same ID
func TestFullModerationWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	progressions := NewProgressionHandler(db, cfg)
	admin := NewAdminHandler(db, cfg)

	// Step 1: Submit
	payload := testutil.TestPayload("Just the Two of Us", "IVM7", "", "III7", "", "VIm7", "", "Vm7")
	req := testutil.MakeRequest("POST", "/api/progressions", payload, nil)
	w := httptest.NewRecorder()
	progressions.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Submit failed: %d - %s", w.Code, w.Body.String())
	}
	var sub models.Submission
	testutil.AssertJSON(t, w, &sub)
	t.Logf("Step 1 - Submitted: %s", sub.ID)

	// Step 2: Not published yet
	req = httptest.NewRequest("GET", "/api/progressions/"+sub.ID, nil)
	req.SetPathValue("id", sub.ID)
	w = httptest.NewRecorder()
	progressions.Get(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Step 2 - Expected 404 before approval, got %d", w.Code)
	}

	// Step 3: Approve
	req = testutil.MakeRequest("POST", "/api/admin/pending/"+sub.ID,
		models.AdminActionRequest{Action: models.ActionApprove}, testutil.AdminHeaders())
	req.SetPathValue("id", sub.ID)
	w = httptest.NewRecorder()
	admin.Process(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Approve failed: %d - %s", w.Code, w.Body.String())
	}
	var processed models.ProcessResponse
	testutil.AssertJSON(t, w, &processed)
	progressionID := processed.ProgressionID

	// Step 4: Request an edit
	edited := testutil.TestPayload("Just the Two of Us (Marunouchi)", "IVM7", "", "III7", "", "VIm7", "", "Im7", "IV7")
	req = testutil.MakeRequest("POST", "/api/progressions/"+progressionID+"/edit", edited, nil)
	req.SetPathValue("id", progressionID)
	w = httptest.NewRecorder()
	progressions.RequestEdit(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Edit request failed: %d - %s", w.Code, w.Body.String())
	}
	var edit models.Submission
	testutil.AssertJSON(t, w, &edit)

	// Step 5: Diff, then approve
	req = testutil.MakeRequest("GET", "/api/admin/pending/"+edit.ID+"/diff", nil, testutil.AdminHeaders())
	req.SetPathValue("id", edit.ID)
	w = httptest.NewRecorder()
	admin.Diff(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Diff failed: %d - %s", w.Code, w.Body.String())
	}
	var diff models.DiffResponse
	testutil.AssertJSON(t, w, &diff)
	if diff.Original == nil || diff.Original.Title != "Just the Two of Us" {
		t.Fatalf("Step 5 - Unexpected original: %+v", diff.Original)
	}

	req = testutil.MakeRequest("POST", "/api/admin/pending/"+edit.ID,
		models.AdminActionRequest{Action: models.ActionApprove}, testutil.AdminHeaders())
	req.SetPathValue("id", edit.ID)
	w = httptest.NewRecorder()
	admin.Process(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Approve edit failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Same ID, new content
	req = httptest.NewRequest("GET", "/api/progressions/"+progressionID, nil)
	req.SetPathValue("id", progressionID)
	w = httptest.NewRecorder()
	progressions.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Get failed: %d", w.Code)
	}
	var p models.Progression
	testutil.AssertJSON(t, w, &p)
	if p.Title != "Just the Two of Us (Marunouchi)" {
		t.Errorf("Step 6 - Expected edited title, got '%s'", p.Title)
	}
	if p.NormalizedChords != "IVM7|III7|VIm7|Im7|IV7" {
		t.Errorf("Step 6 - Unexpected search column '%s'", p.NormalizedChords)
	}

	req = httptest.NewRequest("GET", "/api/progressions", nil)
	w = httptest.NewRecorder()
	progressions.List(w, req)
	var list []models.ProgressionSummary
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 {
		t.Errorf("Step 6 - Expected one published progression, got %d", len(list))
	}

	req = testutil.MakeRequest("GET", "/api/admin/pending", nil, testutil.AdminHeaders())
	w = httptest.NewRecorder()
	admin.ListPending(w, req)
	var pending []models.Submission
	testutil.AssertJSON(t, w, &pending)
	if len(pending) != 0 {
		t.Errorf("Step 6 - Expected empty queue, got %d", len(pending))
	}
}
