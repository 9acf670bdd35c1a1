package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/rephrase/internal/clipboard"
	"github.com/csheth/rephrase/internal/history"
	"github.com/csheth/rephrase/internal/processing"
	"github.com/csheth/rephrase/internal/source"
)

type processResultMsg struct {
	generation uint64
	result     processing.Result
	err        error
}

type copyResultMsg struct {
	err error
}

type historySavedMsg struct {
	path string
	err  error
}

type inputChangedMsg struct {
	path string
}

type inputLoadedMsg struct {
	path string
	text string
	err  error
}

type bannerExpiredMsg struct {
	seq uint64
}

type copyFeedbackExpiredMsg struct {
	seq uint64
}

func processJob(client processing.Client, generation uint64, req processing.Request, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		result, err := client.Process(ctx, req)
		return processResultMsg{generation: generation, result: result, err: err}, err
	}
}

func copyJob(writer clipboard.Writer, text string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := writer.WriteAll(text)
		return copyResultMsg{err: err}, err
	}
}

func saveHistoryJob(path string, entry history.Entry) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := history.Append(path, entry)
		return historySavedMsg{path: path, err: err}, err
	}
}

func reloadInputJob(path string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		text, err := source.Load(path)
		return inputLoadedMsg{path: path, text: text, err: err}, err
	}
}

// waitForInputChange blocks until the watcher reports a change. It returns
// nil once the watcher is closed, which ends the watch loop.
func waitForInputChange(w *source.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return inputChangedMsg{path: w.Path()}
	}
}

func expireBannerAfter(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

func expireCopyFeedbackAfter(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return copyFeedbackExpiredMsg{seq: seq}
	})
}
