package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for every view mode.
// It lives in pkg/types so the dispatcher and the help footer share it.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Tab   key.Binding

	// Actions on the selection
	Rename  key.Binding
	Create  key.Binding
	Open    key.Binding
	Encrypt key.Binding
	Decrypt key.Binding
	Delete  key.Binding
	Color   key.Binding
	Yank    key.Binding

	// Text entry (FileEdit, Rename, Create)
	Save      key.Binding
	Cancel    key.Binding
	Commit    key.Binding
	Discard   key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the bindings used by the browser.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "parent"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "open dir"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "view file"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "rename"),
		),
		Create: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "new file"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "O"),
			key.WithHelp("o", "edit"),
		),
		Encrypt: key.NewBinding(
			key.WithKeys("e", "E"),
			key.WithHelp("e", "encrypt"),
		),
		Decrypt: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "decrypt"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete"),
		),
		Color: key.NewBinding(
			key.WithKeys("c", "C"),
			key.WithHelp("c", "colors"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "copy path"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Discard: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete char"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Tab, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Tab},
		{k.Rename, k.Create, k.Open, k.Delete},
		{k.Encrypt, k.Decrypt, k.Yank, k.Color},
		{k.Help, k.Quit},
	}
}

// EditHelp is the short help shown while editing a file.
func (k KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}

// PromptHelp is the short help shown in the name prompt.
func (k KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Discard}
}
