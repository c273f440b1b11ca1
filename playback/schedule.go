// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package playback

import (
	"github.com/android-cat/ChordProgressShare/chord"
)

const (
	DefaultBPM = 120
	MinBPM     = 40
	MaxBPM     = 240

	// BeatsPerSlot is the length of one chord slot; a measure of 4/4 holds two.
	BeatsPerSlot = 2
)

// Step is one chord change in a playback schedule.
type Step struct {
	// Index is the slot position in the 16-slot pattern, used by clients
	// to highlight the playing chord.
	Index      int    `json:"index"`
	Chord      string `json:"chord"`
	OffsetMS   int64  `json:"offset_ms"`
	DurationMS int64  `json:"duration_ms"`
}

// ClampBPM limits bpm to [MinBPM, MaxBPM]. Zero or negative means DefaultBPM.
func ClampBPM(bpm int) int {
	switch {
	case bpm <= 0:
		return DefaultBPM
	case bpm < MinBPM:
		return MinBPM
	case bpm > MaxBPM:
		return MaxBPM
	}
	return bpm
}

func slotMS(bpm int) int64 {
	return int64(BeatsPerSlot) * 60000 / int64(bpm)
}

// playable copies chords with every slot the codec cannot read set to nil.
func playable(chords []*string) []*string {
	out := make([]*string, len(chords))
	for i, c := range chords {
		if !chord.Parse(c).IsZero() {
			out[i] = c
		}
	}
	return out
}

// Schedule lays out the chords of a pattern in time. Slots that do not
// parse as chords count as empty, and empty measures are skipped; a measure
// without a second beat holds its first chord for the whole bar. A measure
// with only a second beat rests on the first half.
// It also returns the total length in milliseconds.
func Schedule(chords []*string, bpm int) ([]Step, int64) {
	slot := slotMS(ClampBPM(bpm))

	steps := []Step{}
	var offset int64
	for _, m := range chord.CompactMeasures(playable(chords)) {
		first := chord.BeatsPerMeasure * m.Index
		switch {
		case m.FirstBeat != nil && !m.HasSecondBeat:
			steps = append(steps, Step{Index: first, Chord: *m.FirstBeat, OffsetMS: offset, DurationMS: 2 * slot})
		case m.FirstBeat != nil:
			steps = append(steps,
				Step{Index: first, Chord: *m.FirstBeat, OffsetMS: offset, DurationMS: slot},
				Step{Index: first + 1, Chord: *m.SecondBeat, OffsetMS: offset + slot, DurationMS: slot},
			)
		default:
			steps = append(steps, Step{Index: first + 1, Chord: *m.SecondBeat, OffsetMS: offset + slot, DurationMS: slot})
		}
		offset += 2 * slot
	}
	return steps, offset
}
