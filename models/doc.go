// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - ProgressionPayload: title, remarks, patterns, songs (new posts and edit requests)
  - PatternInput: label, chords (up to 16 slots, null for empty)
  - SongInput: name, artist, youtube_url, spotify_url, apple_music_url
  - AdminActionRequest: action ("approve" or "reject")
  - BlockIPRequest: ip_address, reason
  - FeedbackRequest: content
  - ParseChordRequest, BuildChordRequest: chord codec input

# Response Types

  - DiffResponse: original (null for new posts), updated
  - ProcessResponse: message, status, progression_id
  - PatternMeasures: measure layout of one pattern
  - ScheduleResponse: playback steps of one pattern
  - ErrorResponse: error, message

# Domain Types

  - Progression: published progression with patterns and songs
  - ProgressionSummary: list view without songs
  - Submission: pending, approved or rejected submission
  - Pattern, Song, BlockedIP, Feedback

# Constants

Submission status:

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

Admin actions:

	ActionApprove = "approve"
	ActionReject  = "reject"
*/
package models
