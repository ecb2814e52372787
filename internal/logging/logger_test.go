package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInternalErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json").With("component", "test")

	log.InternalError("write failed", errors.New("boom"), "item_id", "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decoding log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "ERROR" || entry["err"] != "boom" || entry["item_id"] != "abc" || entry["component"] != "test" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestBusinessErrorIsWarnAndSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "text")

	log.BusinessError("ignored", nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error was logged: %q", buf.String())
	}

	log.BusinessError("rejected", errors.New("missing field"))
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("want warn level, got %q", buf.String())
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")
	log.Info("hidden")
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("below-level output: %q", buf.String())
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closer, err := Open(path, "info", "json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
