package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Screen switching
	ScreenHome   key.Binding
	ScreenUpload key.Binding
	ScreenSetup  key.Binding
	ScreenLogs   key.Binding

	// Source intents
	TryBackend   key.Binding
	SwitchToDemo key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Open         key.Binding

	// Feed and watch actions
	Search       key.Binding
	ClearSearch  key.Binding
	Comment      key.Binding
	NextField    key.Binding
	PrevField    key.Binding
	Submit       key.Binding
	Recheck      key.Binding
	AutoConnect  key.Binding
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		ScreenHome: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Home feed"),
		),
		ScreenUpload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload"),
		),
		ScreenSetup: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Setup"),
		),
		ScreenLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Logs"),
		),

		TryBackend: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Try backend"),
		),
		SwitchToDemo: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Switch to demo"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open video"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear search"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Write comment"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Submit"),
		),
		Recheck: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Check now"),
		),
		AutoConnect: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle auto-connect"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScreenHome, k.ScreenUpload, k.ScreenSetup, k.ScreenLogs, k.Back},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open},
		{k.TryBackend, k.SwitchToDemo, k.Search, k.ClearSearch, k.Comment},
		{k.NextField, k.PrevField, k.Submit},
		{k.Recheck, k.AutoConnect, k.ToggleFollow},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
