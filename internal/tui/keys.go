package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across TUI components.
type StandardKeys struct {
	Quit   key.Binding
	Select key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
}

// NewStandardKeys creates a standard set of key bindings.
func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// browserKeys are the library browser shortcuts.
type browserKeys struct {
	StandardKeys
	Details key.Binding
	Search  key.Binding
}

func newBrowserKeys() browserKeys {
	std := NewStandardKeys()
	std.Quit = key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	)
	return browserKeys{
		StandardKeys: std,
		Details: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "details"),
		),
		Search: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add from catalog"),
		),
	}
}

// searchKeys drive the catalog search screen. Plain letters are text input
// there, so quitting needs ctrl+c.
type searchKeys struct {
	StandardKeys
	Adopt key.Binding
}

func newSearchKeys() searchKeys {
	std := NewStandardKeys()
	std.Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	)
	std.Up = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up"))
	std.Down = key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down"))
	return searchKeys{
		StandardKeys: std,
		Adopt: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add to library"),
		),
	}
}
