package grid

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestClassifyKeyShortcutTable(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want keyAction
	}{
		{"copy", tea.KeyMsg{Type: tea.KeyCtrlC}, keyCopy},
		{"paste", tea.KeyMsg{Type: tea.KeyCtrlV}, keyPaste},
		{"select all", tea.KeyMsg{Type: tea.KeyCtrlA}, keySelectAll},
		{"fill down", tea.KeyMsg{Type: tea.KeyCtrlD}, keyFillDown},
		{"delete clears", tea.KeyMsg{Type: tea.KeyDelete}, keyClear},
		{"backspace clears", tea.KeyMsg{Type: tea.KeyBackspace}, keyClear},
		{"tab next", tea.KeyMsg{Type: tea.KeyTab}, keyNavNext},
		{"shift+tab prev", tea.KeyMsg{Type: tea.KeyShiftTab}, keyNavPrev},
		{"enter down", tea.KeyMsg{Type: tea.KeyEnter}, keyNavDown},
		{"shift+up navigates up", tea.KeyMsg{Type: tea.KeyShiftUp}, keyNavUp},
		{"f2 edits", tea.KeyMsg{Type: tea.KeyF2}, keyEdit},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEscape}, keyCancel},
		{"letter types", runeKey('x'), keyType},
		{"digit types", runeKey('7'), keyType},
		{"punctuation ignored", runeKey('%'), keyNone},
		{"left arrow ignored", tea.KeyMsg{Type: tea.KeyLeft}, keyNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := classifyKey(tc.msg)
			if got != tc.want {
				t.Fatalf("classifyKey(%q) = %d, want %d", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestClassifyKeyTypedRune(t *testing.T) {
	action, r := classifyKey(runeKey('g'))
	if action != keyType || r != 'g' {
		t.Fatalf("classifyKey('g') = %d, %q", action, r)
	}

	alt := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}, Alt: true}
	if action, _ := classifyKey(alt); action != keyNone {
		t.Fatalf("alt+g should not type, got %d", action)
	}

	pasted := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}, Paste: true}
	if action, _ := classifyKey(pasted); action != keyNone {
		t.Fatalf("bracketed paste should not type, got %d", action)
	}
}
