package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":       zerolog.InfoLevel,
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Level: "warn", Format: FormatJSON, Out: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closeFn()
	log.Info().Msg("hidden")
	log.Warn().Str("model", "m").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if rec["message"] != "shown" || rec["model"] != "m" || rec["level"] != "warn" {
		t.Fatalf("record: %v", rec)
	}
	if _, ok := rec["time"]; !ok {
		t.Fatalf("timestamp missing: %v", rec)
	}
}

func TestNew_ConsoleDefault(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("console output: %q", buf.String())
	}
}

func TestNew_AsyncFlushesOnClose(t *testing.T) {
	var buf syncBuffer
	log, closeFn, err := New(Options{Format: FormatJSON, Out: &buf, Async: true})
	if err != nil {
		t.Fatal(err)
	}
	log.Info().Msg("queued")
	closeFn()
	if !strings.Contains(buf.String(), "queued") {
		t.Fatalf("message lost: %q", buf.String())
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error")
	}
}
