// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden message")
	logger.Warn("visible message", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("warn line missing: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("expected key/value pair in output: %s", out)
	}
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty")

	logger.Debug("debug message")
	logger.Info("info message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("debug should be filtered at info level: %s", out)
	}
	if !strings.Contains(out, "info message") {
		t.Errorf("info line missing: %s", out)
	}
}
