package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the global logger.
type Options struct {
	Level string
	// File receives log lines. The terminal UI owns stdout, so an empty
	// File discards logs unless Console is set.
	File    string
	Console bool
}

// Init configures the global zerolog logger and returns a close function for
// the log file.
func Init(opts Options) (func() error, error) {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	var (
		writer  io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return closeFn, err
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closeFn, err
		}
		writer = file
		closeFn = file.Close
	case opts.Console:
		writer = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Str("app", "rephrase").Logger()
	return closeFn, nil
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
