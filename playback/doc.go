// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package playback turns a 16-slot pattern into a timed step schedule and
// drives a per-step callback from it. Sound output is left to the client;
// the server only serves the schedule.
package playback
