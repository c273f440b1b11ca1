// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package playback

import (
	"context"
	"time"
)

// EndOfPlayback is passed to the step callback when playback stops.
const EndOfPlayback = -1

// Sequencer walks a schedule in real time and reports each step as it
// begins. Sleep is swappable so tests run without waiting.
type Sequencer struct {
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewSequencer() *Sequencer {
	return &Sequencer{Sleep: sleep}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Play calls onStep with each step's slot index as it begins, then
// onStep(EndOfPlayback) when the pattern finishes or ctx is cancelled.
// It returns ctx.Err() on cancellation.
func (s *Sequencer) Play(ctx context.Context, chords []*string, bpm int, onStep func(index int)) error {
	defer onStep(EndOfPlayback)

	steps, total := Schedule(chords, bpm)

	var at int64
	for _, step := range steps {
		if err := s.Sleep(ctx, time.Duration(step.OffsetMS-at)*time.Millisecond); err != nil {
			return err
		}
		at = step.OffsetMS
		onStep(step.Index)
	}
	return s.Sleep(ctx, time.Duration(total-at)*time.Millisecond)
}
