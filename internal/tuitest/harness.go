// Package tuitest drives a terminal program inside a pseudo terminal and
// records what it draws, so integration tests can script keystrokes and
// assert on rendered text.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 100
	defaultHeight  = 40
	defaultTimeout = 10 * time.Second
	pollInterval   = 25 * time.Millisecond
)

// Step is one scripted interaction. WaitFor, when set, blocks until the
// plain-text output contains it; Delay then elapses before Input is written.
type Step struct {
	WaitFor string
	Delay   time.Duration
	Input   []byte
}

// Config describes the program under test and the script to replay.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording holds the raw terminal stream and the frames parsed from it.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// PlainText returns the whole stream with escape sequences removed.
func (r *Recording) PlainText() string {
	if r == nil {
		return ""
	}
	return normalizeLines(stripANSI(strings.ReplaceAll(string(r.Raw), "\r", "")))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func (b *syncBuffer) containsPlain(text string) bool {
	return strings.Contains(stripANSI(string(b.Bytes())), text)
}

// Run starts the command inside a PTY, replays the steps, and waits for the
// program to exit.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	width := cfg.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := cfg.Height
	if height <= 0 {
		height = defaultHeight
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	output := &syncBuffer{}
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		responder := newTerminalResponder(ptmx, width, height)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				responder.Process(chunk)
				_, _ = output.Write(chunk)
			}
			if readErr != nil {
				return
			}
		}
	}()

	start := time.Now()
	for idx, step := range cfg.Steps {
		if step.WaitFor != "" {
			if err := waitFor(ctx, output, step.WaitFor); err != nil {
				return nil, fmt.Errorf("tuitest: step %d: %w\n%s", idx, err, stripANSI(string(output.Bytes())))
			}
		}
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: context cancelled before script finished: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) > 0 {
			if _, err := ptmx.Write(step.Input); err != nil {
				return nil, fmt.Errorf("tuitest: write input: %w", err)
			}
		}
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-waitErr:
		if err != nil && !exitAllowed(err, cfg) {
			return nil, fmt.Errorf("tuitest: program exited with error: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}

	_ = ptmx.Close()
	<-copyDone

	raw := output.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

func waitFor(ctx context.Context, output *syncBuffer, text string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if output.containsPlain(text) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %q: %w", text, ctx.Err())
		case <-ticker.C:
		}
	}
}

func exitAllowed(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == 0 {
			return true
		}
		for _, code := range cfg.AllowedExitCodes {
			if exitErr.ExitCode() == code {
				return true
			}
		}
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// Key sequences as a terminal sends them.
var (
	KeyEnter    = []byte{'\r'}
	KeyTab      = []byte{'\t'}
	KeyShiftTab = []byte("\x1b[Z")
	KeyEsc      = []byte{27}
	KeyCtrlC    = []byte{3}
	KeyCtrlJ    = []byte{10}
	KeyCtrlL    = []byte{12}
	KeyCtrlS    = []byte{19}
	KeyCtrlT    = []byte{20}
	KeyCtrlY    = []byte{25}
	KeyF1       = []byte("\x1bOP")
)
