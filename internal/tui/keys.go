package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings with built-in help text.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding

	NextEvent key.Binding
	PrevEvent key.Binding
	NextIP    key.Binding
	PrevIP    key.Binding
	Clear     key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		NextEvent: key.NewBinding(
			key.WithKeys("right", "e"),
			key.WithHelp("→/e", "next event filter"),
		),
		PrevEvent: key.NewBinding(
			key.WithKeys("left", "E"),
			key.WithHelp("←/E", "prev event filter"),
		),
		NextIP: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "next ip filter"),
		),
		PrevIP: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "prev ip filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}
