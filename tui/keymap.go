package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	status key.Binding
	layers key.Binding
	close  key.Binding
	quit   key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.status, k.layers, k.close, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.status, k.layers, k.close, k.quit},
	}
}

func GetKeymap() keymap {
	return keymap{
		status: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "status"),
		),
		layers: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "layers"),
		),
		close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
