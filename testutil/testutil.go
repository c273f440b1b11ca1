// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/android-cat/ChordProgressShare/auth"
	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/db"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/store"
)

// TestAdminPassword is the admin credential in GetTestConfig
const TestAdminPassword = "test-admin-password"

// SetupTestDB creates a fresh SQLite database with the full schema in a
// per-test temp directory. The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = "file:" + filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8000,
		DatabaseType:  cliparse.DatabaseSQLite,
		DatabaseURL:   "file::memory:",
		AdminPassword: TestAdminPassword,
		CORSOrigin:    "*",
		SubmitRate:    1000,
		SubmitBurst:   1000,
		LogLevel:      "error",
		TrustProxy:    true,
	}
}

// TestPayload returns a valid submission payload with one pattern
func TestPayload(title string, chords ...string) models.ProgressionPayload {
	slots := make([]*string, len(chords))
	for i := range chords {
		if chords[i] != "" {
			slots[i] = &chords[i]
		}
	}
	return models.ProgressionPayload{
		Title:    title,
		Remarks:  "test remarks",
		Patterns: []models.PatternInput{{Label: "Verse", Chords: slots}},
		Songs:    []models.SongInput{{Name: "Test Song", Artist: "Test Artist"}},
	}
}

// CreateTestSubmission stores a pending submission and returns its ID.
// originalID may be empty for a new post.
func CreateTestSubmission(t *testing.T, conn *sql.DB, title, originalID, ip string) string {
	t.Helper()

	payload := TestPayload(title, "I", "", "V", "", "VIm", "", "IV")
	chords, _ := chord.PadSlots(payload.Patterns[0].Chords)

	sub := models.Submission{
		ID:        auth.GenerateID(),
		Title:     title,
		Remarks:   payload.Remarks,
		Patterns:  []models.Pattern{{Label: "Verse", Chords: chords}},
		Songs:     []models.Song{{Name: "Test Song", Artist: "Test Artist"}},
		Status:    models.StatusPending,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}
	if originalID != "" {
		sub.OriginalID = &originalID
	}

	if err := store.New(conn).CreateSubmission(context.Background(), sub); err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}
	return sub.ID
}

// CreateTestProgression submits and approves a progression and returns the
// published ID
func CreateTestProgression(t *testing.T, conn *sql.DB, title string) string {
	t.Helper()

	subID := CreateTestSubmission(t, conn, title, "", "192.0.2.1")
	id, err := store.New(conn).ApproveSubmission(context.Background(), subID)
	if err != nil {
		t.Fatalf("Failed to approve test submission: %v", err)
	}
	return id
}

// AdminHeaders returns request headers carrying the test admin password
func AdminHeaders() map[string]string {
	return map[string]string{auth.AdminPasswordHeader: TestAdminPassword}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
