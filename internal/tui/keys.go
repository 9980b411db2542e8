package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings of the browser.
type keyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding
	Tab  key.Binding

	// Navigation
	Address        key.Binding
	Back           key.Binding
	Forward        key.Binding
	Reload         key.Binding
	Home           key.Binding
	Bookmarks      key.Binding
	AddBookmark    key.Binding
	RemoveBookmark key.Binding
	SetHome        key.Binding
	Copy           key.Binding

	// Page
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Navigator
	Select key.Binding
	Fold   key.Binding

	// Options
	ToggleNumbers key.Binding
	ToggleOutline key.Binding

	// Input
	Confirm key.Binding
	Cancel  key.Binding
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
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch page/navigator"),
		),

		Address: key.NewBinding(
			key.WithKeys("g", "ctrl+l"),
			key.WithHelp("g", "Go to address"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "left", "backspace"),
			key.WithHelp("b", "Back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f", "right"),
			key.WithHelp("f", "Forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Home"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Bookmarks"),
		),
		AddBookmark: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Bookmark page"),
		),
		RemoveBookmark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Remove bookmark"),
		),
		SetHome: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Set as homepage"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy URL"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("pgdn", "Page down"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Follow link / jump to heading"),
		),
		Fold: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Fold section"),
		),

		ToggleNumbers: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Toggle link numbers"),
		),
		ToggleOutline: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Toggle outline"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Address, k.Back, k.Forward, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Address, k.Back, k.Forward, k.Reload, k.Home, k.Copy},
		{k.Bookmarks, k.AddBookmark, k.RemoveBookmark, k.SetHome},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Tab, k.Select, k.Fold, k.ToggleNumbers, k.ToggleOutline},
		{k.Help, k.Quit},
	}
}
