package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Save      key.Binding
	Sample    key.Binding
	Next      key.Binding
	Prev      key.Binding
	Activate  key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
}

// Terminals report Ctrl+Enter as Ctrl+J (line feed).
var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"), key.WithHelp("ctrl+enter", "Process text")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "Clear all")),
	Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "Copy result")),
	Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "Save to history")),
	Sample:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "Sample text")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Next control")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "Previous control")),
	Activate: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "Toggle / press")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Back to input")),
	Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "Toggle help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
	ScrollUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "Scroll result up")),
	ScrollDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "Scroll result down")),
}

func (k keyMap) legend() []key.Binding {
	return []key.Binding{
		k.Submit, k.Next, k.Activate,
		k.Clear, k.Copy, k.Save,
		k.Sample, k.ScrollUp, k.ScrollDn,
		k.Back, k.Help, k.Quit,
	}
}
