package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/rephrase/internal/form"
)

func (m *model) View() string {
	view := m.form.Render()
	parts := []string{
		m.heroView(),
		m.inputPanel(view),
		m.optionsRow(),
		m.controlsRow(view),
	}
	if view.BannerVisible {
		parts = append(parts, bannerStyle.Render(view.Banner))
	}
	if view.OutputVisible {
		parts = append(parts, m.outputPanel(view))
	}
	parts = append(parts, m.statusLine(view))
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := heroBoxStyle.Render(heroTitleStyle.Render(heroTitle))
	return lipgloss.JoinVertical(lipgloss.Left, title, taglineStyle.Render(heroTagline))
}

func (m *model) inputPanel(view form.View) string {
	style := panelStyle
	if m.focus == focusInput {
		style = panelFocusedStyle
	}
	body := joinLines(
		sectionHeaderStyle.Render("Input"),
		m.input.View(),
		helperStyle.Render(view.InputCount),
	)
	return style.Render(body)
}

func (m *model) optionsRow() string {
	options := m.form.Options()
	cells := make([]string, 0, len(optionToggles))
	for _, toggle := range optionToggles {
		mark := "[ ]"
		if options.Get(toggle.name) {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s %s", mark, toggle.label)
		if m.focus == toggle.target {
			cells = append(cells, toggleFocusedStyle.Render(label))
		} else {
			cells = append(cells, toggleStyle.Render(label))
		}
		cells = append(cells, "   ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) controlsRow(view form.View) string {
	processLabel := "Process Text"
	if view.SpinnerVisible {
		processLabel = fmt.Sprintf("%s Processing…", m.spinner.View())
	}
	buttons := []string{
		m.button(focusProcess, processLabel, view.SubmitEnabled),
		m.button(focusClear, "Clear", true),
	}
	if view.CopyVisible {
		buttons = append(buttons, m.button(focusCopy, view.CopyLabel, true))
	}
	buttons = append(buttons, m.button(focusSample, "Sample", true))

	cells := make([]string, 0, len(buttons)*2)
	for idx, b := range buttons {
		if idx > 0 {
			cells = append(cells, " ")
		}
		cells = append(cells, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) button(target focusTarget, label string, enabled bool) string {
	switch {
	case !enabled:
		return buttonDisabledStyle.Render(label)
	case m.focus == target:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func (m *model) outputPanel(view form.View) string {
	style := panelStyle
	if m.focus == focusCopy {
		style = panelFocusedStyle
	}
	body := joinLines(
		sectionHeaderStyle.Render("Result"),
		successStyle.Render(view.Summary),
		m.output.View(),
		helperStyle.Render(view.OutputCount),
	)
	return style.Render(body)
}

func (m *model) statusLine(view form.View) string {
	stats := []string{
		fmt.Sprintf("State %s", strings.ToUpper(view.State.String())),
	}
	if m.config.Processor != nil {
		stats = append(stats, m.config.Processor.Endpoint())
	}
	if m.lastJob.ID != "" {
		stats = append(stats, m.lastJob.label())
	}
	stats = append(stats, "F1 help")
	parts := []string{statusBarStyle.Render(strings.Join(stats, "  •  "))}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	return joinLines(parts...)
}

func (m *model) keyLegendView() string {
	bindings := keys.legend()
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(bindings); i += columns {
		end := i + columns
		if end > len(bindings) {
			end = len(bindings)
		}
		var cells []string
		for _, binding := range bindings[i:end] {
			help := binding.Help()
			k := keyStyle.Render(help.Key)
			desc := keyDescStyle.Render(fmt.Sprintf(" %-20s", help.Desc))
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, k, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinLines(parts ...string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
