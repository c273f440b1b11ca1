// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/android-cat/ChordProgressShare/cliparse"
	"github.com/android-cat/ChordProgressShare/db"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/moderation"
	"github.com/android-cat/ChordProgressShare/playback"
	"github.com/android-cat/ChordProgressShare/store"
)

// Runner holds the dependencies shared by every command action.
type Runner struct {
	db        *sql.DB
	cfg       cliparse.Config
	store     *store.Store
	workflow  *moderation.Workflow
	sequencer *playback.Sequencer
	output    io.Writer
}

type RunnerOpts struct {
	DB        *sql.DB
	Config    cliparse.Config
	Sequencer *playback.Sequencer
	Output    io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Sequencer == nil {
		opts.Sequencer = playback.NewSequencer()
	}

	st := store.New(opts.DB)
	return &Runner{
		db:        opts.DB,
		cfg:       opts.Config,
		store:     st,
		workflow:  moderation.New(st, opts.Config.AdminPassword),
		sequencer: opts.Sequencer,
		output:    opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		pendingCommand, diffCommand, approveCommand, rejectCommand,
		blockCommand, unblockCommand, blockedCommand, feedbackCommand,
		deleteCommand, schemaCommand, playCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.output, format, args...)
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	r.printf("%s\n", output)
	return nil
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return v, nil
}

// Pending lists the moderation queue, oldest first.
func (r *Runner) Pending(ctx context.Context, cmd *cli.Command) error {
	list, err := r.workflow.ListPending(ctx, r.cfg.AdminPassword)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		r.printf("No pending submissions\n")
		return nil
	}

	for _, sub := range list {
		kind := "new"
		if sub.IsEditRequest() {
			kind = "edit of " + *sub.OriginalID
		}
		r.printf("%s  %-40q  %s  (%s, %s)\n", sub.ID, sub.Title, sub.SubmittedAgo, kind, sub.IPAddress)
	}
	r.printf("%s pending\n", humanize.Comma(int64(len(list))))
	return nil
}

// Diff prints a pending submission next to the progression it would replace.
func (r *Runner) Diff(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	diff, err := r.workflow.Diff(ctx, id, r.cfg.AdminPassword)
	if err != nil {
		return err
	}
	return r.writeJSON(diff)
}

func (r *Runner) process(ctx context.Context, cmd *cli.Command, action string) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	resp, err := r.workflow.Process(ctx, id, action, r.cfg.AdminPassword)
	if err != nil {
		return err
	}
	if resp.ProgressionID != "" {
		r.printf("%s: published as %s\n", resp.Message, resp.ProgressionID)
	} else {
		r.printf("%s\n", resp.Message)
	}
	return nil
}

// Approve publishes a pending submission.
func (r *Runner) Approve(ctx context.Context, cmd *cli.Command) error {
	return r.process(ctx, cmd, models.ActionApprove)
}

// Reject discards a pending submission.
func (r *Runner) Reject(ctx context.Context, cmd *cli.Command) error {
	return r.process(ctx, cmd, models.ActionReject)
}

// Block adds an address to the block list.
func (r *Runner) Block(ctx context.Context, cmd *cli.Command) error {
	ip, err := requireArg(cmd, "ip")
	if err != nil {
		return err
	}
	b, err := r.workflow.BlockIP(ctx, ip, cmd.String("reason"), r.cfg.AdminPassword)
	if err != nil {
		return err
	}
	r.printf("Blocked %s (entry %s)\n", b.IPAddress, b.ID)
	return nil
}

// Unblock removes a block list entry by its ID.
func (r *Runner) Unblock(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.workflow.UnblockIP(ctx, id, r.cfg.AdminPassword); err != nil {
		return err
	}
	r.printf("Removed block entry %s\n", id)
	return nil
}

// Delete takes a published progression down.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.workflow.DeleteProgression(ctx, id, r.cfg.AdminPassword); err != nil {
		return err
	}
	r.printf("Deleted progression %s\n", id)
	return nil
}

// Blocked prints the block list.
func (r *Runner) Blocked(ctx context.Context, cmd *cli.Command) error {
	list, err := r.workflow.ListBlocked(ctx, r.cfg.AdminPassword)
	if err != nil {
		return err
	}
	for _, b := range list {
		r.printf("%s  %-39s  %s  %s\n", b.ID, b.IPAddress, humanize.Time(b.BlockedAt), b.Reason)
	}
	return nil
}

// Feedback prints site feedback, newest first.
func (r *Runner) Feedback(ctx context.Context, cmd *cli.Command) error {
	list, err := r.workflow.ListFeedback(ctx, r.cfg.AdminPassword)
	if err != nil {
		return err
	}
	for _, f := range list {
		r.printf("[%s] %s\n", humanize.Time(f.CreatedAt), f.Content)
	}
	return nil
}

// Schema creates the tables, dropping them first with --reset.
func (r *Runner) Schema(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("reset") {
		if err := db.DropSchema(r.db); err != nil {
			return err
		}
	}
	if err := db.CreateSchema(r.db); err != nil {
		return err
	}
	r.printf("Schema ready (%s)\n", r.cfg.DatabaseType)
	return nil
}

// Play steps through one pattern of a published progression in real time,
// printing each chord as it begins. Ctrl-C stops playback.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	p, err := r.store.GetProgression(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("progression %s not found", id)
	}
	if err != nil {
		return err
	}

	index := int(cmd.Int("pattern"))
	if index < 0 || index >= len(p.Patterns) {
		return fmt.Errorf("pattern %d out of range (progression has %d)", index, len(p.Patterns))
	}
	pat := p.Patterns[index]
	bpm := playback.ClampBPM(int(cmd.Int("bpm")))

	r.printf("%s / %s at %d bpm\n", p.Title, pat.Label, bpm)
	err = r.sequencer.Play(ctx, pat.Chords, bpm, func(i int) {
		if i == playback.EndOfPlayback {
			r.printf("\n")
			return
		}
		r.printf("%s ", *pat.Chords[i])
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
