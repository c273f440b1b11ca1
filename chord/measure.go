// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chord

// Pattern layout: 8 measures of 2 beats.
const (
	MeasuresPerPattern = 8
	BeatsPerMeasure    = 2
	SlotsPerPattern    = MeasuresPerPattern * BeatsPerMeasure
)

// Measure describes one bar of a pattern.
type Measure struct {
	Index         int     `json:"measure_index"`
	FirstBeat     *string `json:"first_beat"`
	SecondBeat    *string `json:"second_beat"`
	HasSecondBeat bool    `json:"has_second_beat"`
	IsEmpty       bool    `json:"is_empty"`
}

// Measures groups slots into MeasuresPerPattern measures. Slots past the end
// of chords are treated as empty.
func Measures(chords []*string) []Measure {
	out := make([]Measure, MeasuresPerPattern)
	for i := range out {
		first := slotAt(chords, BeatsPerMeasure*i)
		second := slotAt(chords, BeatsPerMeasure*i+1)
		out[i] = Measure{
			Index:         i,
			FirstBeat:     first,
			SecondBeat:    second,
			HasSecondBeat: second != nil,
			IsEmpty:       first == nil && second == nil,
		}
	}
	return out
}

// CompactMeasures is Measures without the empty bars. Index still refers
// to the bar's position in the pattern.
func CompactMeasures(chords []*string) []Measure {
	all := Measures(chords)
	out := all[:0]
	for _, m := range all {
		if !m.IsEmpty {
			out = append(out, m)
		}
	}
	return out
}

func slotAt(chords []*string, i int) *string {
	if i < len(chords) {
		return chords[i]
	}
	return nil
}

// PadSlots returns chords extended with nil slots to SlotsPerPattern.
// It reports false if chords is longer than a pattern.
func PadSlots(chords []*string) ([]*string, bool) {
	if len(chords) > SlotsPerPattern {
		return nil, false
	}
	out := make([]*string, SlotsPerPattern)
	copy(out, chords)
	return out, true
}
