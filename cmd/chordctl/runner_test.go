// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/playback"
	"github.com/android-cat/ChordProgressShare/store"
	"github.com/android-cat/ChordProgressShare/testutil"
)

type fixture struct {
	runner *Runner
	store  *store.Store
	out    *bytes.Buffer
	t      *testing.T
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	out := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		DB:     conn,
		Config: testutil.GetTestConfig(),
		Output: out,
		Sequencer: &playback.Sequencer{Sleep: func(ctx context.Context, d time.Duration) error {
			return ctx.Err()
		}},
	})
	return &fixture{runner: runner, store: store.New(conn), out: out, t: t}
}

func (f *fixture) run(args ...string) error {
	f.t.Helper()
	f.out.Reset()
	app := &cli.Command{Name: "chordctl", Commands: f.runner.register()}
	return app.Run(context.Background(), append([]string{"chordctl"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{DB: testutil.SetupTestDB(t), Config: testutil.GetTestConfig()})
		if runner.output == nil {
			t.Error("expected output to default to stdout")
		}
		if runner.sequencer == nil {
			t.Error("expected a default sequencer")
		}
	})

	t.Run("registers every command", func(t *testing.T) {
		f := newFixture(t)
		names := map[string]bool{}
		for _, c := range f.runner.register() {
			names[c.Name] = true
		}
		for _, want := range []string{"pending", "diff", "approve", "reject", "block", "unblock", "blocked", "feedback", "delete", "schema", "play"} {
			if !names[want] {
				t.Errorf("expected command %q", want)
			}
		}
	})
}

func TestPendingAndApprove(t *testing.T) {
	f := newFixture(t)
	conn := f.runner.db

	if err := f.run("pending"); err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "No pending submissions") {
		t.Errorf("unexpected output: %s", f.out.String())
	}

	id := testutil.CreateTestSubmission(t, conn, "From the CLI", "", "192.0.2.5")

	if err := f.run("pending"); err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, id) || !strings.Contains(out, "From the CLI") || !strings.Contains(out, "1 pending") {
		t.Errorf("unexpected pending output: %s", out)
	}

	if err := f.run("diff", id); err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !strings.Contains(f.out.String(), `"original": null`) {
		t.Errorf("expected null original in diff: %s", f.out.String())
	}

	if err := f.run("approve", id); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "published as "+id) {
		t.Errorf("unexpected approve output: %s", f.out.String())
	}

	if err := f.run("reject", id); err == nil {
		t.Error("expected rejecting a resolved submission to fail")
	}
}

func TestMissingArgument(t *testing.T) {
	f := newFixture(t)

	if err := f.run("approve"); err == nil || !strings.Contains(err.Error(), "<id>") {
		t.Errorf("expected missing argument error, got %v", err)
	}
}

func TestBlockCommands(t *testing.T) {
	f := newFixture(t)

	if err := f.run("block", "--reason", "spam", "203.0.113.4"); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	list, err := f.store.ListBlockedIPs(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one block entry, got %v (%v)", list, err)
	}
	if list[0].Reason != "spam" {
		t.Errorf("expected reason 'spam', got '%s'", list[0].Reason)
	}

	if err := f.run("blocked"); err != nil {
		t.Fatalf("blocked failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "203.0.113.4") {
		t.Errorf("unexpected blocked output: %s", f.out.String())
	}

	if err := f.run("block", "203.0.113.4"); err == nil {
		t.Error("expected duplicate block to fail")
	}

	if err := f.run("unblock", list[0].ID); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	id := testutil.CreateTestProgression(t, f.runner.db, "Takedown")

	if err := f.run("delete", id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "Deleted progression "+id) {
		t.Errorf("unexpected output: %s", f.out.String())
	}

	exists, err := f.store.ProgressionExists(context.Background(), id)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("expected progression to be gone")
	}

	if err := f.run("delete", id); err == nil {
		t.Error("expected second delete to fail")
	}
}

func TestSchemaReset(t *testing.T) {
	f := newFixture(t)
	testutil.CreateTestSubmission(t, f.runner.db, "Doomed", "", "")

	if err := f.run("schema", "--reset"); err != nil {
		t.Fatalf("schema failed: %v", err)
	}

	list, err := f.store.ListSubmissions(context.Background(), models.StatusPending)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected reset to clear submissions, got %d", len(list))
	}
}

func TestPlay(t *testing.T) {
	f := newFixture(t)
	id := testutil.CreateTestProgression(t, f.runner.db, "Playable")

	if err := f.run("play", "--bpm", "90", id); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "Playable / Verse at 90 bpm") {
		t.Errorf("unexpected header: %s", out)
	}
	if !strings.Contains(out, "I V VIm IV") {
		t.Errorf("expected chords in order, got: %s", out)
	}

	if err := f.run("play", "--pattern", "5", id); err == nil {
		t.Error("expected out of range pattern to fail")
	}
	if err := f.run("play", "missing"); err == nil {
		t.Error("expected missing progression to fail")
	}
}
