// Package grab defines the options shared by every input mode and runs
// the default mode: reading up to a fixed number of keystrokes, with or
// without line editing, under an optional session deadline.
package grab

import (
	"io"
	"regexp"
	"time"

	"github.com/dshills/grabchars/internal/ascii"
	"github.com/dshills/grabchars/pkg/display"
)

// Session statuses reported through the exit code in place of a count.
// They pass through the shell's 8-bit truncation as 255 and 254.
const (
	StatusCancelled = -1 // Escape pressed
	StatusTimedOut  = -2 // deadline passed with nothing to return
)

// EraseMode is the line-editing tri-state from -E.
type EraseMode uint8

const (
	EraseAuto EraseMode = iota // on when more than one character is wanted
	EraseOn
	EraseOff
)

// HighlightStyle picks how select-lr marks the current match.
type HighlightStyle uint8

const (
	HighlightReverse HighlightStyle = iota // inverse video
	HighlightBracket                       // [match]
	HighlightArrow                         // >match<
)

// Options collects every knob a session can set. One value is built from
// the command line and read, never modified, by the mode that runs.
type Options struct {
	Count   int           // -n: characters to read
	Timeout time.Duration // -t: whole-session deadline, zero for none
	Default string        // -d: returned when nothing was typed

	RetKey bool // -r: Enter submits
	Silent bool // -s: no output, status only
	Flush  bool // -f: drop type-ahead before reading

	Erase EraseMode // -E

	Upper bool // -U
	Lower bool // -L

	Include *regexp.Regexp // -c: only matching characters accepted
	Exclude *regexp.Regexp // -C: matching characters dropped

	ToStderr        bool           // -e: results to the display stream
	Both            bool           // -b: results mirrored to both streams
	TrailingNewline bool           // -Z: final newline on the display stream
	Highlight       HighlightStyle // -H
}

// EraseActive resolves the editing tri-state: explicit settings win, and
// the automatic default turns editing on for multi-character reads.
func (o *Options) EraseActive() bool {
	switch o.Erase {
	case EraseOn:
		return true
	case EraseOff:
		return false
	}
	return o.Count > 1
}

// Allowed applies the include and exclude filters to a typed character.
func (o *Options) Allowed(ch byte) bool {
	s := string(rune(ch))
	if o.Include != nil && !o.Include.MatchString(s) {
		return false
	}
	if o.Exclude != nil && o.Exclude.MatchString(s) {
		return false
	}
	return true
}

// MapCase applies the -U/-L mapping to a typed character.
func (o *Options) MapCase(ch byte) byte {
	return ascii.MapCase(ch, o.Upper, o.Lower)
}

// NewOutput builds the output router for this option set over the given
// streams.
func (o *Options) NewOutput(stdout, stderr io.Writer) *display.Output {
	return &display.Output{
		Stdout:          stdout,
		Stderr:          stderr,
		ToStderr:        o.ToStderr,
		Both:            o.Both,
		Silent:          o.Silent,
		RetKey:          o.RetKey,
		TrailingNewline: o.TrailingNewline,
	}
}
