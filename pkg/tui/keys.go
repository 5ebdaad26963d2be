package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Submit    key.Binding
	Clear     key.Binding
	Units     key.Binding
	NextField key.Binding
	PrevField key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Units: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "cycle units"),
		),
		NextField: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↑/↓", "switch field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("up"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Submit, k.Clear, k.Units, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.NextField},
		{k.Submit, k.Clear, k.Units, k.Quit},
	}
}
