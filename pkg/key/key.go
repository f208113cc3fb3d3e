// Package key decodes the raw byte stream of a terminal in raw mode into
// logical key events. It handles the control-byte shortcuts used for line
// editing and the multi-byte CSI escape sequences that encode arrows, Home,
// End, and Delete, including the timing-based disambiguation between a lone
// Escape keypress and the start of a sequence.
package key

import "fmt"

// Key identifies which logical key an input byte (or byte sequence)
// decoded to.
type Key uint8

const (
	// KeyChar is a printable character; the byte rides in Event.Ch.
	KeyChar Key = iota
	// KeyBackspace is DEL (0x7F) or BS (0x08).
	KeyBackspace
	// KeyDelete is Ctrl-D or the CSI 3~ sequence.
	KeyDelete
	// KeyLeft is Ctrl-B or CSI D.
	KeyLeft
	// KeyRight is Ctrl-F or CSI C.
	KeyRight
	// KeyUp is CSI A.
	KeyUp
	// KeyDown is CSI B.
	KeyDown
	// KeyHome is Ctrl-A, CSI H, or CSI 1~.
	KeyHome
	// KeyEnd is Ctrl-E, CSI F, or CSI 4~.
	KeyEnd
	// KeyTab is 0x09.
	KeyTab
	// KeyEscape is a bare ESC with no sequence following it.
	KeyEscape
	// KeyKillToEnd is Ctrl-K: delete from cursor to end of line.
	KeyKillToEnd
	// KeyKillToStart is Ctrl-U: delete from start of line to cursor.
	KeyKillToStart
	// KeyKillWordBack is Ctrl-W: delete the word before the cursor.
	KeyKillWordBack
	// KeyEnter is LF or CR.
	KeyEnter
	// KeyUnknown is a consumed but unrecognized escape sequence.
	KeyUnknown
)

// String returns a readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyChar:
		return "Char"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyTab:
		return "Tab"
	case KeyEscape:
		return "Escape"
	case KeyKillToEnd:
		return "KillToEnd"
	case KeyKillToStart:
		return "KillToStart"
	case KeyKillWordBack:
		return "KillWordBack"
	case KeyEnter:
		return "Enter"
	case KeyUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// Event is one decoded keystroke. Events carry no identity beyond their
// variant and, for KeyChar, the raw byte.
type Event struct {
	Key Key
	Ch  byte
}

// IsChar reports whether the event is a printable character.
func (e Event) IsChar() bool { return e.Key == KeyChar }

// String returns a readable form of the event.
func (e Event) String() string {
	if e.Key == KeyChar {
		return fmt.Sprintf("Char(%q)", e.Ch)
	}
	return e.Key.String()
}
