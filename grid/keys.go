package grid

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// keyAction classifies a keypress against the fixed shortcut table.
type keyAction int

const (
	keyNone keyAction = iota
	keyCopy
	keyPaste
	keySelectAll
	keyFillDown
	keyClear
	keyNavNext
	keyNavPrev
	keyNavDown
	keyNavUp
	keyEdit
	keyCancel
	keyType
)

// classifyKey maps a key message onto an engine action. For keyType the
// returned rune is the typed character that seeds the editor; it is 0 for
// every other action.
func classifyKey(msg tea.KeyMsg) (keyAction, rune) {
	switch msg.String() {
	case "ctrl+c":
		return keyCopy, 0
	case "ctrl+v":
		return keyPaste, 0
	case "ctrl+a":
		return keySelectAll, 0
	case "ctrl+d":
		return keyFillDown, 0
	case "delete", "backspace":
		return keyClear, 0
	case "tab":
		return keyNavNext, 0
	case "shift+tab":
		return keyNavPrev, 0
	case "enter":
		return keyNavDown, 0
	case "shift+enter", "shift+up":
		// Legacy terminal encodings cannot distinguish shift+enter from
		// enter, so most hosts never deliver it; shift+up is the reachable
		// binding for the mirror move.
		return keyNavUp, 0
	case "f2":
		return keyEdit, 0
	case "esc":
		return keyCancel, 0
	}
	if r, ok := typedRune(msg); ok {
		return keyType, r
	}
	return keyNone, 0
}

// typedRune reports whether the message is a single printable alphanumeric
// character with no modifier, the trigger for type-to-edit.
func typedRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || msg.Paste {
		return 0, false
	}
	if len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 0, false
	}
	return r, true
}
