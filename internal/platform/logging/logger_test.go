package logging

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJSON_WritesKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSON(LevelInfo, WithWriter(&buf))

	logger.Debug("hidden")
	logger.Info("feed fetched", "url", "https://example.test/day.json", "error", errors.New("boom"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered at info level: %s", out)
	}
	for _, want := range []string{`"msg":"feed fetched"`, `"url":"https://example.test/day.json"`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output: %s", want, out)
		}
	}
}

func TestNewJSON_TeesIntoFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calendar.log")
	var buf bytes.Buffer
	logger := NewJSON(LevelDebug, WithWriter(&buf), WithFile(FileConfig{Path: path, MaxSizeMB: 1, MaxAgeDays: 1}))
	logger.Warn("rotating")
	_ = logger.Sync()

	if !strings.Contains(buf.String(), "rotating") {
		t.Fatalf("expected console record, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", input, got, want)
		}
	}
}

func TestSetMirror_ReceivesPassingRecords(t *testing.T) {
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	var buf bytes.Buffer
	logger := NewJSON(LevelInfo, WithWriter(&buf))
	logger.Debug("filtered")
	logger.InfoContext(context.Background(), "calendar built", "matches", 3)

	if len(got) != 1 || got[0] != "info:calendar built" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}
