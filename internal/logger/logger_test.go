package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestZapLoggerWritesStructuredField(t *testing.T) {
	var buf bytes.Buffer
	log := New(zapcore.AddSync(&buf), zapcore.InfoLevel)

	log.InfoObj("operation dispatched", "operation", map[string]any{"id": "filtering_enable"})
	log.DebugObj("hidden", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at info level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "operation dispatched" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
	op, ok := entry["operation"].(map[string]any)
	if !ok || op["id"] != "filtering_enable" {
		t.Fatalf("unexpected operation field %v", entry["operation"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
