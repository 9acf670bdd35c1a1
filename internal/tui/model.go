package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog/log"

	"github.com/csheth/rephrase/internal/clipboard"
	"github.com/csheth/rephrase/internal/form"
	"github.com/csheth/rephrase/internal/history"
	"github.com/csheth/rephrase/internal/processing"
	"github.com/csheth/rephrase/internal/source"
)

// Config wires runtime collaborators into the TUI program.
type Config struct {
	Processor processing.Client
	Clipboard clipboard.Writer
	Options   processing.Options

	InitialInput string
	// InputWatcher, when set, reloads the input whenever its file changes.
	InputWatcher *source.Watcher
	HistoryPath  string

	RequestTimeout time.Duration
	BannerDuration time.Duration
	CopyFeedback   time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.BannerDuration <= 0 {
		config.BannerDuration = defaultBannerDuration
	}
	if config.CopyFeedback <= 0 {
		config.CopyFeedback = defaultCopyFeedback
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultRequestTimeout
	}
	if config.Clipboard == nil {
		config.Clipboard = clipboard.System{}
	}

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetWidth(80)
	input.SetHeight(8)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	output := viewport.New(80, 8)
	output.MouseWheelEnabled = true

	f := form.New(config.Options)
	if config.InitialInput != "" {
		f.SetInput(config.InitialInput)
		input.SetValue(config.InitialInput)
	}

	return &model{
		config:      config,
		form:        f,
		jobs:        newJobBus(),
		layout:      newPageLayout(),
		input:       input,
		output:      output,
		spinner:     spin,
		focus:       focusInput,
		infoMessage: "Type or paste text, pick options, then press Ctrl+Enter.",
	}
}

type model struct {
	config Config
	form   *form.Form
	jobs   *jobBus
	layout pageLayout

	input   textarea.Model
	output  viewport.Model
	spinner spinner.Model

	focus       focusTarget
	helpVisible bool
	infoMessage string
	lastJob     jobSnapshot
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.config.InputWatcher != nil {
		cmds = append(cmds, waitForInputChange(m.config.InputWatcher))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.form.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case jobSignalMsg:
		m.lastJob = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJob = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case processResultMsg:
		return m, m.handleProcessResult(msg)
	case copyResultMsg:
		return m, m.handleCopyResult(msg)
	case historySavedMsg:
		if msg.err != nil {
			return m, m.showError(fmt.Sprintf("Failed to save result: %v", msg.err))
		}
		m.infoMessage = fmt.Sprintf("Saved result to %s", msg.path)
		return m, nil
	case inputChangedMsg:
		return m, m.jobs.Start(jobSpec{Kind: jobKindReload, Run: reloadInputJob(msg.path)})
	case inputLoadedMsg:
		var cmds []tea.Cmd
		if m.config.InputWatcher != nil {
			cmds = append(cmds, waitForInputChange(m.config.InputWatcher))
		}
		if msg.err != nil {
			cmds = append(cmds, m.showError(fmt.Sprintf("Failed to reload %s: %v", msg.path, msg.err)))
			return m, tea.Batch(cmds...)
		}
		m.setInput(msg.text)
		m.infoMessage = fmt.Sprintf("Reloaded input from %s", msg.path)
		return m, tea.Batch(cmds...)
	case bannerExpiredMsg:
		m.form.ExpireBanner(msg.seq)
		return m, nil
	case copyFeedbackExpiredMsg:
		m.form.ExpireCopyFeedback(msg.seq)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Submit):
		return m.actionProcess()
	case key.Matches(msg, keys.Clear):
		m.actionClear()
		return nil
	case key.Matches(msg, keys.Copy):
		return m.actionCopy()
	case key.Matches(msg, keys.Save):
		return m.actionSave()
	case key.Matches(msg, keys.Sample):
		m.actionSample()
		return nil
	case key.Matches(msg, keys.Help):
		m.helpVisible = !m.helpVisible
		return nil
	case key.Matches(msg, keys.Next):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, keys.Prev):
		m.moveFocus(-1)
		return nil
	case key.Matches(msg, keys.ScrollUp):
		m.output.HalfViewUp()
		return nil
	case key.Matches(msg, keys.ScrollDn):
		m.output.HalfViewDown()
		return nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.form.SetInput(m.input.Value())
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.setFocus(focusInput)
		return nil
	case key.Matches(msg, keys.Activate):
		return m.activateFocused()
	}
	return nil
}

func (m *model) activateFocused() tea.Cmd {
	for _, toggle := range optionToggles {
		if toggle.target == m.focus {
			m.form.ToggleOption(toggle.name)
			return nil
		}
	}
	switch m.focus {
	case focusProcess:
		// a disabled button ignores presses; the shortcut still validates
		if !m.form.Render().SubmitEnabled {
			return nil
		}
		return m.actionProcess()
	case focusClear:
		m.actionClear()
	case focusCopy:
		return m.actionCopy()
	case focusSample:
		m.actionSample()
	}
	return nil
}

func (m *model) actionProcess() tea.Cmd {
	m.form.SetInput(m.input.Value())
	sub, err := m.form.Submit()
	if err != nil {
		if errors.Is(err, form.ErrBusy) {
			return nil
		}
		return expireBannerAfter(m.config.BannerDuration, m.form.BannerSeq())
	}
	if m.config.Processor == nil {
		m.form.Complete(sub.Generation, processing.Result{}, errors.New("no processing endpoint configured"))
		return expireBannerAfter(m.config.BannerDuration, m.form.BannerSeq())
	}
	m.infoMessage = "Processing text…"
	log.Info().
		Uint64("generation", sub.Generation).
		Bool("paraphrase", sub.Request.Options.Paraphrase).
		Bool("remove_ai_phrases", sub.Request.Options.RemoveAIPhrases).
		Bool("humanize", sub.Request.Options.Humanize).
		Msg("submitting text")
	return tea.Batch(
		m.spinner.Tick,
		m.jobs.Start(processSpec(sub.Generation, processJob(m.config.Processor, sub.Generation, sub.Request, m.config.RequestTimeout))),
	)
}

func (m *model) handleProcessResult(msg processResultMsg) tea.Cmd {
	applied := m.form.Complete(msg.generation, msg.result, msg.err)
	if !applied {
		log.Info().Uint64("generation", msg.generation).Msg("discarded result of cleared request")
		m.infoMessage = "Ready."
		return nil
	}
	if msg.err != nil {
		m.infoMessage = "Processing failed. Fix the problem and try again."
		return expireBannerAfter(m.config.BannerDuration, m.form.BannerSeq())
	}
	m.refreshOutput()
	if m.form.TakeScrollRequest() {
		m.output.GotoTop()
		m.setFocus(focusCopy)
	}
	m.infoMessage = "Done. Ctrl+Y copies the result."
	return nil
}

func (m *model) actionClear() {
	m.form.Clear()
	m.input.Reset()
	m.output.SetContent("")
	if m.form.TakeFocusRequest() {
		m.setFocus(focusInput)
	}
	m.infoMessage = "Cleared."
}

func (m *model) actionCopy() tea.Cmd {
	if !m.form.Render().CopyVisible {
		return nil
	}
	return m.jobs.Start(jobSpec{Kind: jobKindCopy, Run: copyJob(m.config.Clipboard, m.form.CopyText())})
}

func (m *model) handleCopyResult(msg copyResultMsg) tea.Cmd {
	if msg.err != nil {
		log.Warn().Err(msg.err).Msg("failed to copy text")
		m.form.CopyFailed()
		return expireBannerAfter(m.config.BannerDuration, m.form.BannerSeq())
	}
	seq := m.form.CopySucceeded()
	return expireCopyFeedbackAfter(m.config.CopyFeedback, seq)
}

func (m *model) actionSave() tea.Cmd {
	result := m.form.Result()
	if result == nil {
		m.infoMessage = "Nothing to save yet. Process some text first."
		return nil
	}
	if m.config.HistoryPath == "" {
		m.infoMessage = "Set history_file in the config to save results."
		return nil
	}
	entry := history.NewEntry(m.form.Input(), result.ProcessedText, result.OptionsApplied)
	m.infoMessage = "Saving result…"
	return m.jobs.Start(jobSpec{Kind: jobKindSave, Run: saveHistoryJob(m.config.HistoryPath, entry)})
}

func (m *model) actionSample() {
	m.form.LoadSample()
	m.input.SetValue(m.form.Input())
	m.infoMessage = "Sample text loaded."
}

func (m *model) setInput(text string) {
	m.form.SetInput(text)
	m.input.SetValue(text)
}

func (m *model) showError(message string) tea.Cmd {
	seq := m.form.ShowError(message)
	return expireBannerAfter(m.config.BannerDuration, seq)
}

func (m *model) refreshOutput() {
	view := m.form.Render()
	if !view.OutputVisible {
		m.output.SetContent("")
		return
	}
	m.output.SetContent(wordwrap.String(view.Output, m.wrapWidth(2)))
}

func (m *model) availableFocus() []focusTarget {
	copyVisible := m.form.Render().CopyVisible
	targets := make([]focusTarget, 0, len(focusSequence))
	for _, target := range focusSequence {
		if target == focusCopy && !copyVisible {
			continue
		}
		targets = append(targets, target)
	}
	return targets
}

func (m *model) moveFocus(delta int) {
	targets := m.availableFocus()
	current := 0
	for idx, target := range targets {
		if target == m.focus {
			current = idx
			break
		}
	}
	next := (current + delta + len(targets)) % len(targets)
	m.setFocus(targets[next])
}

func (m *model) setFocus(target focusTarget) {
	m.focus = target
	if target == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

func (m *model) applyLayout() {
	m.input.SetWidth(m.layout.inputWidth)
	m.input.SetHeight(m.layout.inputHeight)
	m.output.Width = m.layout.outputWidth
	m.output.Height = m.layout.outputHeight
	m.refreshOutput()
}

func (m *model) wrapWidth(padding int) int {
	width := m.output.Width
	if width <= 0 {
		width = 80
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
