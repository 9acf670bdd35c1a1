package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"WARN":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"unknown":  zerolog.InfoLevel,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rephrase.log")
	closeFn, err := Init(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	log.Info().Str("component", "test").Msg("hello log")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello log"`) {
		t.Fatalf("log line missing: %s", data)
	}
	if !strings.Contains(string(data), `"app":"rephrase"`) {
		t.Fatalf("app field missing: %s", data)
	}
}
