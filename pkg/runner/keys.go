package runner

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyInterrupt kills the running process instead of being written to it.
const KeyInterrupt = "ctrl+c"

// Key is a parsed key press as delivered by the UI.
type Key struct {
	Name  string // "enter", "up", "backspace", or a single character
	Shift bool
}

// KeyFromMsg converts a bubbletea key event into a Key.
func KeyFromMsg(msg tea.KeyMsg) Key {
	if msg.Type == tea.KeyRunes && !msg.Alt {
		return Key{Name: string(msg.Runes)}
	}
	if msg.Type == tea.KeySpace {
		return Key{Name: "space"}
	}
	return Key{Name: msg.String()}
}

// EncodeKey returns the bytes a terminal sends for k. The second result is
// false for keys that have no encoding and must not be forwarded.
func EncodeKey(k Key) ([]byte, bool) {
	switch k.Name {
	case "enter":
		return []byte("\n"), true
	case "up":
		return []byte("\x1b[A"), true
	case "down":
		return []byte("\x1b[B"), true
	case "right":
		return []byte("\x1b[C"), true
	case "left":
		return []byte("\x1b[D"), true
	case "backspace":
		return []byte{0x7f}, true
	case "space", " ":
		return []byte(" "), true
	}

	runes := []rune(k.Name)
	if len(runes) != 1 || !unicode.IsPrint(runes[0]) {
		return nil, false
	}
	r := runes[0]
	if k.Shift {
		r = unicode.ToUpper(r)
	}
	return []byte(string(r)), true
}
