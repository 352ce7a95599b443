package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play    key.Binding
	Stop    key.Binding
	Suspend key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(
			key.WithKeys("p", " ", "enter"),
			key.WithHelp("p/space", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "suspend"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Play, keys.Stop, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Play, keys.Stop},
		{keys.Suspend, keys.Help, keys.Quit},
	}
}
