package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/rephrase/internal/form"
	"github.com/csheth/rephrase/internal/history"
	"github.com/csheth/rephrase/internal/processing"
)

func successProcessor() *fakeProcessor {
	return &fakeProcessor{result: processing.Result{
		ProcessedText: "Cleaned text.",
		OptionsApplied: map[string]bool{
			processing.OptionHumanize:        true,
			processing.OptionRemoveAIPhrases: true,
		},
	}}
}

func TestSubmitEmptyInputShowsBannerWithoutRequest(t *testing.T) {
	proc := successProcessor()
	m, _ := newTestModel(t, proc)
	typeText(m, "   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	if cmd == nil {
		t.Fatal("validation failure should schedule the banner expiry")
	}
	view := m.form.Render()
	if !view.BannerVisible || view.Banner != form.MessageEmptyInput {
		t.Fatalf("expected empty input banner, got %+v", view)
	}
	if view.State != form.StateIdle {
		t.Fatalf("state changed on validation failure: %v", view.State)
	}
	if proc.calls() != 0 {
		t.Fatalf("no request should be issued, got %d", proc.calls())
	}
}

func TestSubmitWithoutOptionsShowsBanner(t *testing.T) {
	proc := successProcessor()
	m, _ := newTestModel(t, proc)
	typeText(m, "Some text")
	m.form.SetOptions(processing.Options{})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	if got := m.form.Render().Banner; got != form.MessageNoOption {
		t.Fatalf("banner = %q, want %q", got, form.MessageNoOption)
	}
	if proc.calls() != 0 {
		t.Fatalf("no request should be issued, got %d", proc.calls())
	}
}

func TestSubmitRendersResult(t *testing.T) {
	proc := successProcessor()
	m, _ := newTestModel(t, proc)
	typeText(m, "  Original text  ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	if !m.form.Loading() {
		t.Fatal("form should be loading after submit")
	}
	if view := m.form.Render(); view.SubmitEnabled || !view.SpinnerVisible {
		t.Fatalf("loading view should disable submit and show spinner: %+v", view)
	}
	drain(t, m, cmd)

	if proc.calls() != 1 {
		t.Fatalf("expected one request, got %d", proc.calls())
	}
	req := proc.requests[0]
	if req.Text != "Original text" {
		t.Fatalf("request text should be trimmed, got %q", req.Text)
	}
	if req.Options != defaultOptions() {
		t.Fatalf("unexpected options %+v", req.Options)
	}

	view := m.form.Render()
	if view.State != form.StateSuccess || !view.OutputVisible {
		t.Fatalf("expected visible success output, got %+v", view)
	}
	if view.Summary != "Applied: AI phrases removed, Humanized" {
		t.Fatalf("unexpected summary %q", view.Summary)
	}
	if m.focus != focusCopy {
		t.Fatalf("focus should move to the result, got %v", m.focus)
	}
	rendered := m.View()
	for _, want := range []string{"Cleaned text.", "13 characters", "Applied: AI phrases removed, Humanized"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("view missing %q:\n%s", want, rendered)
		}
	}
}

func TestSubmitErrorShowsBannerAndClearsLoading(t *testing.T) {
	proc := &fakeProcessor{err: &processing.APIError{StatusCode: 500, Message: "model offline"}}
	m, _ := newTestModel(t, proc)
	typeText(m, "text")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	// run the request alone so the banner expiry never fires
	env, ok := runJob(cmd)
	if !ok {
		t.Fatal("submit should start a processing job")
	}
	m.Update(env)

	view := m.form.Render()
	if view.State != form.StateError || view.SpinnerVisible {
		t.Fatalf("expected error state without spinner, got %+v", view)
	}
	if view.Banner != "Error processing text: model offline" {
		t.Fatalf("unexpected banner %q", view.Banner)
	}
	if view.OutputVisible {
		t.Fatal("output should stay hidden after a failure")
	}
	if !view.SubmitEnabled {
		t.Fatal("submit should be enabled again after failure")
	}
}

// runJob executes cmd, descending into batches and sequences, until it
// finds a job result envelope.
func runJob(cmd tea.Cmd) (jobResultEnvelope, bool) {
	if cmd == nil {
		return jobResultEnvelope{}, false
	}
	msg := cmd()
	if env, ok := msg.(jobResultEnvelope); ok {
		return env, true
	}
	for _, c := range cmdsOf(msg) {
		if env, ok := runJob(c); ok {
			return env, true
		}
	}
	return jobResultEnvelope{}, false
}

func TestSubmitWhileLoadingIsIgnored(t *testing.T) {
	proc := successProcessor()
	m, _ := newTestModel(t, proc)
	typeText(m, "text")

	_, first := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	if second != nil {
		t.Fatal("second submit should not start a request")
	}
	drain(t, m, first)
	if proc.calls() != 1 {
		t.Fatalf("expected exactly one request, got %d", proc.calls())
	}
}

func TestClearDuringRequestDiscardsResult(t *testing.T) {
	proc := successProcessor()
	m, _ := newTestModel(t, proc)
	typeText(m, "text")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.input.Value() != "" || m.form.Input() != "" {
		t.Fatal("clear should empty the input")
	}
	drain(t, m, cmd)

	view := m.form.Render()
	if view.OutputVisible {
		t.Fatalf("stale result should be discarded, got %+v", view)
	}
	if view.State != form.StateIdle || view.SpinnerVisible {
		t.Fatalf("loading should end after the stale response, got %v", view.State)
	}
	if m.focus != focusInput {
		t.Fatalf("focus should return to input, got %v", m.focus)
	}
}

func TestClearResetsOutput(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	typeText(m, "text")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	drain(t, m, cmd)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	view := m.form.Render()
	if view.OutputVisible || view.InputCount != "0 characters" {
		t.Fatalf("clear should hide output and reset count, got %+v", view)
	}
	if strings.Contains(m.View(), "Cleaned text.") {
		t.Fatal("cleared output still rendered")
	}
}

func TestCopyShowsFeedbackThenReverts(t *testing.T) {
	m, clip := newTestModel(t, successProcessor())
	typeText(m, "text")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	drain(t, m, cmd)

	_, copyCmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	env, ok := runJob(copyCmd)
	if !ok {
		t.Fatal("copy should run as a job")
	}
	_, expire := m.Update(env)
	if clip.text != "Cleaned text." {
		t.Fatalf("clipboard holds %q", clip.text)
	}
	if got := m.form.Render().CopyLabel; got != "Copied!" {
		t.Fatalf("copy label = %q, want Copied!", got)
	}
	drain(t, m, expire)
	if got := m.form.Render().CopyLabel; got != "Copy" {
		t.Fatalf("copy label should revert, got %q", got)
	}
}

func TestCopyFailureShowsBanner(t *testing.T) {
	m, clip := newTestModel(t, successProcessor())
	clip.err = errors.New("no display")
	typeText(m, "text")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	drain(t, m, cmd)

	_, copyCmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	env, ok := runJob(copyCmd)
	if !ok {
		t.Fatal("copy should run as a job")
	}
	m.Update(env)
	if got := m.form.Render().Banner; got != form.MessageCopyFailed {
		t.Fatalf("banner = %q, want %q", got, form.MessageCopyFailed)
	}
}

func TestCopyWithoutOutputIsNoop(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY}); cmd != nil {
		t.Fatal("copy should do nothing before a result exists")
	}
}

func TestBannerExpiryIsLastWriteWins(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	firstSeq := m.form.BannerSeq()
	typeText(m, "x")
	m.form.SetOptions(processing.Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})

	m.Update(bannerExpiredMsg{seq: firstSeq})
	if got := m.form.Render().Banner; got != form.MessageNoOption {
		t.Fatalf("older expiry hid the newer banner, got %q", got)
	}
	m.Update(bannerExpiredMsg{seq: m.form.BannerSeq()})
	if m.form.Render().BannerVisible {
		t.Fatal("current expiry should hide the banner")
	}
}

func TestFocusRingTogglesOptions(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusParaphrase {
		t.Fatalf("tab should focus the first option, got %v", m.focus)
	}
	if m.input.Focused() {
		t.Fatal("textarea should blur when focus leaves it")
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if !m.form.Options().Paraphrase {
		t.Fatal("space should toggle paraphrase")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusInput || !m.input.Focused() {
		t.Fatal("shift+tab should return to the input")
	}
}

func TestFocusRingSkipsHiddenCopy(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	m.setFocus(focusClear)
	m.moveFocus(1)
	if m.focus != focusSample {
		t.Fatalf("copy is hidden without output, focus = %v", m.focus)
	}
}

func TestDisabledProcessButtonIgnoresPress(t *testing.T) {
	proc := successProcessor()
	m, _ := newTestModel(t, proc)
	m.setFocus(focusProcess)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("disabled button should not do anything")
	}
	if m.form.Render().BannerVisible {
		t.Fatal("disabled button should not validate")
	}
}

func TestSampleFillsInput(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.input.Value() != form.SampleText || m.form.Input() != form.SampleText {
		t.Fatal("sample text should fill the input")
	}
}

func TestSaveWritesHistory(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	typeText(m, "text")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	drain(t, m, cmd)

	_, save := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	drain(t, m, save)
	entries, err := history.Load(m.config.HistoryPath)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(entries) != 1 || entries[0].Output != "Cleaned text." || entries[0].Input != "text" {
		t.Fatalf("unexpected history %+v", entries)
	}
}

func TestSaveWithoutResultIsNoop(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Fatal("save should do nothing before a result exists")
	}
	if !strings.Contains(m.infoMessage, "Nothing to save") {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}
}

func TestMissingProcessorReportsError(t *testing.T) {
	m, _ := newTestModel(t, nil)
	typeText(m, "text")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	view := m.form.Render()
	if view.State != form.StateError || !strings.HasPrefix(view.Banner, "Error processing text:") {
		t.Fatalf("expected error without processor, got %+v", view)
	}
}

func TestInputReloadReplacesText(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	m.Update(inputLoadedMsg{path: "draft.txt", text: "fresh draft"})
	if m.input.Value() != "fresh draft" || m.form.Render().InputCount != "11 characters" {
		t.Fatalf("reload did not replace input: %q", m.input.Value())
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, successProcessor())
	if strings.Contains(m.View(), "Toggle help") {
		t.Fatal("legend should start hidden")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(m.View(), "Toggle help") {
		t.Fatal("F1 should show the key legend")
	}
}
