package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatal("info line must be filtered at warn level")
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("expected one json line, got %q: %v", out, err)
	}
	if line["msg"] != "shown" || line["app"] != "sparqlscanner" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
