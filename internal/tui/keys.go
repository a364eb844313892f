package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Tab      key.Binding

	// Views
	Browse    key.Binding
	Favorites key.Binding
	Help      key.Binding

	// Actions
	Quit           key.Binding
	Escape         key.Binding
	Filter         key.Binding
	GlobalSearch   key.Binding
	Sort           key.Binding
	ToggleSidebar  key.Binding
	Refresh        key.Binding
	ResetFilters   key.Binding
	Favorite       key.Binding
	ClearFavorites key.Binding
	Analyze        key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "n"),
			key.WithHelp("]/n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "p"),
			key.WithHelp("[/p", "previous page"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		Browse: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "browse"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "favorites"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter list"),
		),
		GlobalSearch: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "search catalog"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset filters"),
		),
		Favorite: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "favorite"),
		),
		ClearFavorites: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear favorites"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "AI insights"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
