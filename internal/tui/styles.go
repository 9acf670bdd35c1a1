package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#7fdbca")
	emberColor     = lipgloss.Color("#102a2a")
	heroTextColor  = lipgloss.Color("#e6fffa")
	secondaryColor = lipgloss.Color("#9ad1c4")

	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c")).Italic(true)

	heroTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(emberColor).Padding(0, 2)
	heroBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor)
	taglineStyle   = lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)

	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff4f4")).Background(lipgloss.Color("#9b2226")).Padding(0, 1)

	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	panelFocusedStyle = panelStyle.Copy().BorderForeground(accentColor)

	buttonStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Background(lipgloss.Color("#393552")).Padding(0, 1)
	buttonFocusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentColor).Padding(0, 1)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("#232136")).Padding(0, 1)

	toggleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	toggleFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
)
