package models

import (
	"time"

	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/playback"
)

// Submission status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Admin action constants
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Request types

type PatternInput struct {
	Label  string    `json:"label"`
	Chords []*string `json:"chords"`
}

type SongInput struct {
	Name          string `json:"name"`
	Artist        string `json:"artist,omitempty"`
	YoutubeURL    string `json:"youtube_url,omitempty"`
	SpotifyURL    string `json:"spotify_url,omitempty"`
	AppleMusicURL string `json:"apple_music_url,omitempty"`
}

// HasURL reports whether any streaming link is set.
func (s SongInput) HasURL() bool {
	return s.YoutubeURL != "" || s.SpotifyURL != "" || s.AppleMusicURL != ""
}

// ProgressionPayload is the body of both new posts and edit requests.
type ProgressionPayload struct {
	Title    string         `json:"title"`
	Remarks  string         `json:"remarks"`
	Patterns []PatternInput `json:"patterns"`
	Songs    []SongInput    `json:"songs"`
}

type AdminActionRequest struct {
	Action string `json:"action"`
}

type BlockIPRequest struct {
	IPAddress string `json:"ip_address"`
	Reason    string `json:"reason"`
}

type FeedbackRequest struct {
	Content string `json:"content"`
}

type ParseChordRequest struct {
	Chord *string `json:"chord"`
}

type BuildChordRequest struct {
	Degree  chord.Degree  `json:"degree"`
	Quality chord.Quality `json:"quality"`
	Bass    chord.Degree  `json:"bass"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ChordResponse struct {
	Chord *string     `json:"chord"`
	Token chord.Token `json:"token"`
}

type ProcessResponse struct {
	Message       string `json:"message"`
	Status        string `json:"status"`
	ProgressionID string `json:"progression_id,omitempty"`
}

type DiffResponse struct {
	Original *Progression `json:"original"`
	Updated  Submission   `json:"updated"`
}

type PatternMeasures struct {
	PatternID string          `json:"pattern_id"`
	Label     string          `json:"label"`
	Measures  []chord.Measure `json:"measures"`
}

type ScheduleResponse struct {
	PatternID  string          `json:"pattern_id"`
	BPM        int             `json:"bpm"`
	DurationMS int64           `json:"duration_ms"`
	Steps      []playback.Step `json:"steps"`
}

// Domain types

type Pattern struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Chords    []*string `json:"chords"`
	SortOrder int       `json:"sort_order"`
}

type Song struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Artist        string `json:"artist,omitempty"`
	YoutubeURL    string `json:"youtube_url,omitempty"`
	SpotifyURL    string `json:"spotify_url,omitempty"`
	AppleMusicURL string `json:"apple_music_url,omitempty"`
}

type Progression struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Remarks          string    `json:"remarks"`
	Status           string    `json:"status"`
	NormalizedChords string    `json:"normalized_chords"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Patterns         []Pattern `json:"patterns"`
	Songs            []Song    `json:"songs"`
}

// ProgressionSummary is the list-view shape: no songs.
type ProgressionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
	Patterns  []Pattern `json:"patterns"`
}

// Submission is an unpublished new post (OriginalID nil) or edit request.
type Submission struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Remarks      string     `json:"remarks"`
	Patterns     []Pattern  `json:"patterns"`
	Songs        []Song     `json:"songs"`
	OriginalID   *string    `json:"original_id"`
	Status       string     `json:"status"`
	IPAddress    string     `json:"ip_address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	SubmittedAgo string     `json:"submitted_ago,omitempty"`
}

// IsEditRequest reports whether the submission targets a published progression.
func (s Submission) IsEditRequest() bool {
	return s.OriginalID != nil
}

type BlockedIP struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	Reason    string    `json:"reason,omitempty"`
	BlockedAt time.Time `json:"blocked_at"`
}

type Feedback struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
