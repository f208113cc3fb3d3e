package grab

import (
	"errors"

	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/edit"
	"github.com/dshills/grabchars/pkg/key"
)

// Run executes the default mode: keystrokes accumulate until Count
// characters are held, Enter submits early (-r), the deadline passes, or
// input ends. With editing active the buffer is drawn and corrected in
// place and emitted once at the end; without it each accepted character
// streams straight to the result. The return value is the session status.
func Run(opts *Options, rd *Reader, out *display.Output) int {
	erase := opts.EraseActive()
	buf := edit.NewBuffer()

loop:
	for buf.Len() < opts.Count {
		ev, err := rd.Next()
		if err != nil {
			if errors.Is(err, ErrTimedOut) {
				if opts.Default != "" && buf.Len() == 0 {
					return out.Default(opts.Default)
				}
				return StatusTimedOut
			}
			// EOF or a dead input stream: keep what was captured.
			break
		}

		if erase {
			switch ev.Key {
			case key.KeyChar:
				if !opts.Allowed(ev.Ch) {
					continue
				}
				buf.Insert(opts.MapCase(ev.Ch))
				if !opts.Silent {
					out.Redraw(buf.Bytes(), buf.Cursor(), buf.Cursor()-1)
				}
			case key.KeyBackspace:
				if buf.Backspace() && !opts.Silent {
					out.Redraw(buf.Bytes(), buf.Cursor(), buf.Cursor()+1)
				}
			case key.KeyDelete:
				if buf.Delete() && !opts.Silent {
					out.Redraw(buf.Bytes(), buf.Cursor(), buf.Cursor())
				}
			case key.KeyLeft:
				if buf.Left() && !opts.Silent {
					out.Left()
				}
			case key.KeyRight:
				if buf.Right() && !opts.Silent {
					out.Right()
				}
			case key.KeyHome:
				if n := buf.Home(); n > 0 && !opts.Silent {
					out.CursorLeftN(n)
				}
			case key.KeyEnd:
				if n := buf.End(); n > 0 && !opts.Silent {
					out.CursorRightN(n)
				}
			case key.KeyKillToEnd:
				if buf.KillToEnd() > 0 && !opts.Silent {
					out.ClearToEnd()
				}
			case key.KeyKillToStart:
				if n := buf.KillToStart(); n > 0 && !opts.Silent {
					out.Redraw(buf.Bytes(), buf.Cursor(), n)
				}
			case key.KeyKillWordBack:
				if n := buf.KillWordBack(); n > 0 && !opts.Silent {
					out.Redraw(buf.Bytes(), buf.Cursor(), buf.Cursor()+n)
				}
			case key.KeyEnter:
				if opts.Default != "" && buf.Len() == 0 {
					return out.Default(opts.Default)
				}
				if opts.RetKey {
					break loop
				}
				// Enter is otherwise an ordinary newline, subject to the
				// filters but not to case mapping.
				if !opts.Allowed('\n') {
					continue
				}
				buf.Insert('\n')
				if !opts.Silent {
					out.Redraw(buf.Bytes(), buf.Cursor(), buf.Cursor()-1)
				}
			}
		} else {
			switch ev.Key {
			case key.KeyChar:
				if !opts.Allowed(ev.Ch) {
					continue
				}
				ch := opts.MapCase(ev.Ch)
				buf.Insert(ch)
				if !opts.Silent {
					out.Char(ch)
				}
			case key.KeyBackspace:
				// Editing off: backspace is a raw byte that counts.
				buf.Insert(0x7F)
			case key.KeyEnter:
				if opts.Default != "" && buf.Len() == 0 {
					return out.Default(opts.Default)
				}
				if opts.RetKey {
					break loop
				}
			}
		}
	}

	if erase && !opts.Silent {
		out.Result(buf.String())
	}
	return buf.Len()
}
