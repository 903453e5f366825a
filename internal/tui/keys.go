package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Refresh  key.Binding
	Theme    key.Binding
	Logout   key.Binding

	// List navigation
	Up   key.Binding
	Down key.Binding

	// Accounts screen
	ToggleConnect key.Binding
	AddAccount    key.Binding
	DeleteAccount key.Binding
	ResetLocal    key.Binding
	SetDefault    key.Binding

	// Analytics time range
	PrevRange key.Binding
	NextRange key.Binding

	// Chat
	Retry key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	Theme:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "toggle theme")),
	Logout:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),

	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),

	ToggleConnect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect/disconnect")),
	AddAccount:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add account")),
	DeleteAccount: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete account")),
	ResetLocal:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard local changes")),
	SetDefault:    key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "set default")),

	PrevRange: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev range")),
	NextRange: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next range")),

	Retry: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry failed message")),
}
