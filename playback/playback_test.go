// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slots(names ...string) []*string {
	out := make([]*string, 16)
	for i, n := range names {
		if n != "" {
			s := n
			out[i] = &s
		}
	}
	return out
}

func TestClampBPM(t *testing.T) {
	testCases := []struct {
		in, want int
	}{
		{0, DefaultBPM},
		{-5, DefaultBPM},
		{10, MinBPM},
		{40, 40},
		{96, 96},
		{240, 240},
		{999, MaxBPM},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ClampBPM(tc.in), "ClampBPM(%d)", tc.in)
	}
}

func TestSchedule(t *testing.T) {
	// bar 0: IV V, bar 1: empty, bar 2: IIIm alone, bar 3: rest then VIm
	chords := slots("IV", "V", "", "", "IIIm", "", "", "VIm")

	steps, total := Schedule(chords, 120)

	// 120 bpm: a slot is two beats, 1000ms
	require.Len(t, steps, 4)
	assert.Equal(t, Step{Index: 0, Chord: "IV", OffsetMS: 0, DurationMS: 1000}, steps[0])
	assert.Equal(t, Step{Index: 1, Chord: "V", OffsetMS: 1000, DurationMS: 1000}, steps[1])
	assert.Equal(t, Step{Index: 4, Chord: "IIIm", OffsetMS: 2000, DurationMS: 2000}, steps[2])
	assert.Equal(t, Step{Index: 7, Chord: "VIm", OffsetMS: 5000, DurationMS: 1000}, steps[3])
	assert.Equal(t, int64(6000), total)
}

func TestSchedule_SkipsUnparseableText(t *testing.T) {
	testCases := []struct {
		name    string
		chords  []*string
		indexes []int
		total   int64
	}{
		{"free text beside a chord", slots("hello", "", "IV"), []int{2}, 2000},
		{"only free text", slots("hello", "world"), nil, 0},
		{"free text on the second beat", slots("V", "???"), []int{0}, 2000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			steps, total := Schedule(tc.chords, 120)
			var got []int
			for _, s := range steps {
				got = append(got, s.Index)
			}
			assert.Equal(t, tc.indexes, got)
			assert.Equal(t, tc.total, total)
		})
	}
}

func TestSchedule_Empty(t *testing.T) {
	steps, total := Schedule(slots(), 120)
	assert.Empty(t, steps)
	assert.Zero(t, total)
}

func TestSchedule_ClampsTempo(t *testing.T) {
	steps, _ := Schedule(slots("I"), 1000)
	require.Len(t, steps, 1)
	assert.Equal(t, int64(2*2*60000/MaxBPM), steps[0].DurationMS)
}

func TestPlay_ReportsStepsThenEnd(t *testing.T) {
	var slept []time.Duration
	seq := &Sequencer{Sleep: func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}}

	var got []int
	err := seq.Play(context.Background(), slots("I", "", "", "V"), 120, func(i int) {
		got = append(got, i)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3, EndOfPlayback}, got)
	assert.Equal(t, []time.Duration{0, 3 * time.Second, time.Second}, slept)
}

func TestPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	seq := &Sequencer{Sleep: func(ctx context.Context, d time.Duration) error {
		if d > 0 {
			cancel()
		}
		return ctx.Err()
	}}

	var got []int
	err := seq.Play(ctx, slots("I", "", "IV"), 120, func(i int) {
		got = append(got, i)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, EndOfPlayback}, got)
}

func TestPlay_RealTimer(t *testing.T) {
	seq := NewSequencer()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var got []int
	err := seq.Play(ctx, slots("I", "", "IV"), 120, func(i int) {
		got = append(got, i)
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []int{0, EndOfPlayback}, got)
}
