// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"github.com/urfave/cli/v3"

	"github.com/android-cat/ChordProgressShare/playback"
)

func idArg() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

func pendingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "pending",
		Usage:  "List pending submissions, oldest first",
		Action: r.Pending,
	}
}

func diffCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Show a pending submission beside the progression it edits",
		Arguments: idArg(),
		Action:    r.Diff,
	}
}

func approveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "approve",
		Usage:     "Publish a pending submission",
		Arguments: idArg(),
		Action:    r.Approve,
	}
}

func rejectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "reject",
		Usage:     "Discard a pending submission",
		Arguments: idArg(),
		Action:    r.Reject,
	}
}

func blockCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "block",
		Usage:     "Block submissions from an IP address",
		Arguments: []cli.Argument{&cli.StringArg{Name: "ip"}},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "reason",
				Aliases: []string{"r"},
				Usage:   "Why the address is blocked",
			},
		},
		Action: r.Block,
	}
}

func unblockCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "unblock",
		Usage:     "Remove a block list entry by ID",
		Arguments: idArg(),
		Action:    r.Unblock,
	}
}

func blockedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "blocked",
		Usage:  "List blocked addresses",
		Action: r.Blocked,
	}
}

func feedbackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "feedback",
		Usage:  "List site feedback",
		Action: r.Feedback,
	}
}

func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Take down a published progression",
		Arguments: idArg(),
		Action:    r.Delete,
	}
}

func schemaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Create database tables",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Drop all tables first (destroys data)",
			},
		},
		Action: r.Schema,
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Step through a progression's chords in time",
		Arguments: idArg(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "bpm",
				Usage: "Tempo in beats per minute",
				Value: playback.DefaultBPM,
			},
			&cli.IntFlag{
				Name:  "pattern",
				Usage: "Pattern index",
			},
		},
		Action: r.Play,
	}
}
