package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// jobKind names the background work the form hands off the event loop.
type jobKind string

type jobStatus string

const (
	jobKindProcess jobKind = "process"
	jobKindCopy    jobKind = "copy"
	jobKindSave    jobKind = "save"
	jobKindReload  jobKind = "reload"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

// jobSpec is one unit of background work. Generation is the form request it
// belongs to; zero for work that is not tied to a submission.
type jobSpec struct {
	Kind       jobKind
	Generation uint64
	Run        jobRunner
}

type jobRunner func(context.Context) (tea.Msg, error)

func processSpec(generation uint64, run jobRunner) jobSpec {
	return jobSpec{Kind: jobKindProcess, Generation: generation, Run: run}
}

type jobSnapshot struct {
	ID         string
	Kind       jobKind
	Generation uint64
	Status     jobStatus
	StartedAt  time.Time
	Duration   time.Duration
	Err        string
}

// label is the status bar text, e.g. "process #3 running".
func (s jobSnapshot) label() string {
	if s.Generation > 0 {
		return fmt.Sprintf("%s #%d %s", s.Kind, s.Generation, s.Status)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Status)
}

func (s jobSnapshot) settle(err error) jobSnapshot {
	s.Duration = time.Since(s.StartedAt)
	s.Status = jobStatusSucceeded
	if err != nil {
		s.Status = jobStatusFailed
		s.Err = err.Error()
	}
	return s
}

func (s jobSnapshot) logEvent() *zerolog.Event {
	event := log.Info()
	if s.Status == jobStatusFailed {
		event = log.Warn().Str("error", s.Err)
	}
	event = event.Str("job", s.ID).Str("kind", string(s.Kind))
	if s.Generation > 0 {
		event = event.Uint64("generation", s.Generation)
	}
	return event.Str("status", string(s.Status)).Dur("duration", s.Duration)
}

// jobSignalMsg reports that a job has started.
type jobSignalMsg struct {
	Snapshot jobSnapshot
}

// jobResultEnvelope carries a finished job's payload to Update.
type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobBus struct {
	counter int64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

// Start runs spec off the event loop. The running snapshot is delivered
// before the payload, so the status bar never lags the result.
func (b *jobBus) Start(spec jobSpec) tea.Cmd {
	running := jobSnapshot{
		ID:         fmt.Sprintf("%s-%d", spec.Kind, atomic.AddInt64(&b.counter, 1)),
		Kind:       spec.Kind,
		Generation: spec.Generation,
		Status:     jobStatusRunning,
		StartedAt:  time.Now(),
	}
	return tea.Sequence(
		func() tea.Msg { return jobSignalMsg{Snapshot: running} },
		func() tea.Msg {
			payload, err := spec.Run(context.Background())
			done := running.settle(err)
			done.logEvent().Msg("job finished")
			return jobResultEnvelope{Snapshot: done, Payload: payload}
		},
	)
}
