package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds host-level bindings. Everything cell-related belongs to the
// interaction engine; only app chrome lives here. Plain letters are out of
// bounds because the engine claims printable characters for type-to-edit.
type keyMap struct {
	Quit   key.Binding
	Jump   key.Binding
	AddRow key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Jump:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "jump to column")),
		AddRow: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new row")),
	}
}
