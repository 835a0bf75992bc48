package prompt

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings shared by the prompts.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding // Multiselect: flip the highlighted option.
	Pick   key.Binding // Multisearch: flip the highlighted result. Space is part of the query.
	Submit key.Binding
	Yes    key.Binding
	No     key.Binding
	Switch key.Binding // Confirm: move between Yes and No.
	Abort  key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "select"),
	),
	Pick: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "select"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Switch: key.NewBinding(
		key.WithKeys("left", "right", "tab", "h", "l"),
		key.WithHelp("←/→", "switch"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	),
}
