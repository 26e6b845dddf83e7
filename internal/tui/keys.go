package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Home   key.Binding
	Quit   key.Binding
	Cancel key.Binding

	Calendar key.Binding
	Theme    key.Binding
	Language key.Binding
	Upgrade  key.Binding
	Reset    key.Binding

	// Result screen
	Win   key.Binding
	Loss  key.Binding
	Again key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Home:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

	Calendar: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calendar")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Language: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
	Upgrade:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upgrade")),
	Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset quota")),

	Win:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "won")),
	Loss:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lost")),
	Again: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new signal")),
}
