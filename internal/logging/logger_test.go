package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gemini.log")
	logger, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("fetched", "url", "gemini://h/")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "fetched") || !strings.Contains(string(raw), "url=gemini://h/") {
		t.Fatalf("unexpected log contents: %q", raw)
	}
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := New("", "warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer closer.Close()
	if logger.GetLevel() != log.WarnLevel {
		t.Fatalf("unexpected level: %v", logger.GetLevel())
	}
	logger.Warn("nowhere")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":      log.InfoLevel,
		"DEBUG": log.DebugLevel,
		" warn": log.WarnLevel,
		"error": log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
