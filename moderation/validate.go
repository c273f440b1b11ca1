// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import (
	"fmt"
	"strings"

	"github.com/android-cat/ChordProgressShare/auth"
	"github.com/android-cat/ChordProgressShare/chord"
	"github.com/android-cat/ChordProgressShare/models"
)

const (
	maxTitleLength   = 255
	maxLabelLength   = 100
	maxPatterns      = 20
	maxSongs         = 20
	maxFeedbackChars = 2000
)

// normalizePayload validates a submission payload and returns the patterns
// and songs to store. Patterns are padded to 16 slots with full-width
// notation normalized; blank song rows are dropped.
func normalizePayload(p models.ProgressionPayload) (models.ProgressionPayload, []models.Pattern, []models.Song, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Remarks = strings.TrimSpace(p.Remarks)

	if p.Title == "" {
		return p, nil, nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len([]rune(p.Title)) > maxTitleLength {
		return p, nil, nil, fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLength)
	}
	if len(p.Patterns) == 0 {
		return p, nil, nil, fmt.Errorf("%w: at least one pattern is required", ErrValidation)
	}
	if len(p.Patterns) > maxPatterns {
		return p, nil, nil, fmt.Errorf("%w: at most %d patterns are allowed", ErrValidation, maxPatterns)
	}

	patterns := make([]models.Pattern, 0, len(p.Patterns))
	for i, in := range p.Patterns {
		chords, ok := chord.PadSlots(in.Chords)
		if !ok {
			return p, nil, nil, fmt.Errorf("%w: pattern %d has more than %d chords", ErrValidation, i+1, chord.SlotsPerPattern)
		}
		for j := range chords {
			chords[j] = chord.NormalizeSlot(chords[j])
		}

		label := strings.TrimSpace(in.Label)
		if label == "" {
			label = fmt.Sprintf("Pattern %d", i+1)
		}
		if len([]rune(label)) > maxLabelLength {
			return p, nil, nil, fmt.Errorf("%w: pattern label must be at most %d characters", ErrValidation, maxLabelLength)
		}

		patterns = append(patterns, models.Pattern{
			ID:        auth.GenerateID(),
			Label:     label,
			Chords:    chords,
			SortOrder: i,
		})
	}

	songs := make([]models.Song, 0, len(p.Songs))
	for i, in := range p.Songs {
		in.Name = strings.TrimSpace(in.Name)
		in.Artist = strings.TrimSpace(in.Artist)
		in.YoutubeURL = strings.TrimSpace(in.YoutubeURL)
		in.SpotifyURL = strings.TrimSpace(in.SpotifyURL)
		in.AppleMusicURL = strings.TrimSpace(in.AppleMusicURL)

		if in.Name == "" {
			if in.HasURL() {
				return p, nil, nil, fmt.Errorf("%w: song %d has a link but no name", ErrValidation, i+1)
			}
			// Blank form row
			continue
		}

		songs = append(songs, models.Song{
			ID:            auth.GenerateID(),
			Name:          in.Name,
			Artist:        in.Artist,
			YoutubeURL:    in.YoutubeURL,
			SpotifyURL:    in.SpotifyURL,
			AppleMusicURL: in.AppleMusicURL,
		})
	}
	if len(songs) > maxSongs {
		return p, nil, nil, fmt.Errorf("%w: at most %d songs are allowed", ErrValidation, maxSongs)
	}

	return p, patterns, songs, nil
}
