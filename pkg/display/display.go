// Package display writes everything a session shows or returns. Interactive
// feedback such as echo, redraws, and widget lines goes to the display
// stream (stderr on a real terminal); the captured result goes to the
// result stream, with flags controlling redirection and mirroring. Streams
// are plain io.Writers so tests can capture output byte for byte.
package display

import (
	"fmt"
	"io"
)

// Control sequences for managing the single input line. Everything the
// program draws is cursor-relative; the screen is never addressed
// absolutely.
const (
	CursorLeft  = "\x1b[D"
	CursorRight = "\x1b[C"
	ClearToEOL  = "\x1b[K"
	ReverseOn   = "\x1b[7m"
	ReverseOff  = "\x1b[27m"

	csi = "\x1b["
)

// Output routes session output according to the redirection flags. Write
// failures are ignored throughout; a vanished terminal surfaces on the
// input side and ends the session there.
type Output struct {
	Stdout io.Writer // result stream
	Stderr io.Writer // display stream

	ToStderr        bool // -e: results go to the display stream instead
	Both            bool // -b: mirror results onto the other stream too
	Silent          bool // -s: suppress output, report via exit status only
	RetKey          bool // -r: Enter submits; also widens default output
	TrailingNewline bool // -Z: final newline on the display stream
}

// route writes a result string to the primary stream and, when asked,
// mirrors it to the secondary one.
func (o *Output) route(s string, both bool) {
	if o.ToStderr {
		io.WriteString(o.Stderr, s)
		if both {
			io.WriteString(o.Stdout, s)
		}
	} else {
		io.WriteString(o.Stdout, s)
		if both {
			io.WriteString(o.Stderr, s)
		}
	}
}

// Char emits one accepted character on the result stream as it is typed.
func (o *Output) Char(ch byte) {
	o.route(string(ch), o.Both)
}

// Result emits a completed buffer on the result stream.
func (o *Output) Result(s string) {
	o.route(s, o.Both)
}

// Default emits the default string and returns its length, the session
// status for a defaulted read. With -r the default is mirrored to both
// streams so scripts that read either side still see it.
func (o *Output) Default(s string) int {
	if !o.Silent {
		o.route(s, o.Both || o.RetKey)
	}
	return len(s)
}

// Newline terminates the display line when trailing newlines are enabled.
func (o *Output) Newline() {
	if o.TrailingNewline {
		io.WriteString(o.Stderr, "\n")
	}
}

// Echo writes raw text to the display stream.
func (o *Output) Echo(s string) {
	io.WriteString(o.Stderr, s)
}

// Left moves the cursor one column left.
func (o *Output) Left() {
	io.WriteString(o.Stderr, CursorLeft)
}

// Right moves the cursor one column right.
func (o *Output) Right() {
	io.WriteString(o.Stderr, CursorRight)
}

// ClearToEnd clears from the cursor to the end of the line.
func (o *Output) ClearToEnd() {
	io.WriteString(o.Stderr, ClearToEOL)
}

// CursorLeftN moves the cursor left n columns.
func (o *Output) CursorLeftN(n int) {
	fmt.Fprintf(o.Stderr, "%s%dD", csi, n)
}

// CursorRightN moves the cursor right n columns.
func (o *Output) CursorRightN(n int) {
	fmt.Fprintf(o.Stderr, "%s%dC", csi, n)
}

// Redraw repaints the edit buffer in place: back up to the start of the
// field, clear it, rewrite the buffer, and park the cursor at its column.
// prevCursor is the cursor's column before the edit, which is how far the
// drawn text starts behind the terminal cursor.
func (o *Output) Redraw(buf []byte, cursor, prevCursor int) {
	if prevCursor > 0 {
		o.CursorLeftN(prevCursor)
	}
	o.ClearToEnd()
	o.Stderr.Write(buf)
	if tail := len(buf) - cursor; tail > 0 {
		o.CursorLeftN(tail)
	}
}

// EraseBack wipes the n columns behind the cursor, removing a displayed
// field entirely. n of zero is a no-op.
func (o *Output) EraseBack(n int) {
	if n > 0 {
		o.CursorLeftN(n)
		o.ClearToEnd()
	}
}
