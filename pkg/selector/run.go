package selector

import (
	"errors"

	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/grab"
	"github.com/dshills/grabchars/pkg/key"
)

// finish clears the widget and prints the chosen option, then hands back
// its index in the original list.
func finish(w *Widget, opts *grab.Options, out *display.Output, choice string, idx int) int {
	if !opts.Silent {
		w.Clear(out)
		out.Result(choice)
	}
	return idx
}

// timedOut resolves a timeout: a default that names an option wins,
// otherwise the widget is cleared and the timed-out status returned.
func timedOut(w *Widget, opts *grab.Options, out *display.Output) int {
	if idx, ok := w.DefaultIndex(opts.Default); ok {
		return finish(w, opts, out, w.options[idx], idx)
	}
	if !opts.Silent {
		w.Clear(out)
	}
	return grab.StatusTimedOut
}

// cancel clears the widget and reports a cancelled session. End of input
// counts as a cancel too.
func cancel(w *Widget, opts *grab.Options, out *display.Output) int {
	if !opts.Silent {
		w.Clear(out)
	}
	return grab.StatusCancelled
}

// Run drives the single-match select session. Characters narrow the
// filter, Up and Down browse the matches, Tab completes the filter to
// the selection, and Enter chooses it. The status is the chosen option's
// index in the original list, or the cancelled/timed-out codes.
func Run(w *Widget, opts *grab.Options, rd *grab.Reader, out *display.Output) int {
	if !opts.Silent {
		w.RenderSelect(out)
	}
	for {
		ev, err := rd.Next()
		if err != nil {
			if errors.Is(err, grab.ErrTimedOut) {
				return timedOut(w, opts, out)
			}
			return cancel(w, opts, out)
		}

		redraw := false
		switch ev.Key {
		case key.KeyChar:
			w.InsertChar(opts.MapCase(ev.Ch))
			redraw = true
		case key.KeyBackspace:
			redraw = w.Backspace()
		case key.KeyDelete:
			redraw = w.DeleteForward()
		case key.KeyLeft:
			if w.CursorLeft() && !opts.Silent {
				out.Left()
				w.prevCol--
			}
		case key.KeyRight:
			if w.CursorRight() && !opts.Silent {
				out.Right()
				w.prevCol++
			}
		case key.KeyHome:
			if n := w.CursorHome(); n > 0 && !opts.Silent {
				out.CursorLeftN(n)
				w.prevCol -= n
			}
		case key.KeyEnd:
			if n := w.CursorEnd(); n > 0 && !opts.Silent {
				out.CursorRightN(n)
				w.prevCol += n
			}
		case key.KeyKillToEnd:
			redraw = w.KillToEnd()
		case key.KeyKillToStart:
			redraw = w.KillToStart()
		case key.KeyKillWordBack:
			redraw = w.KillWordBack()
		case key.KeyUp:
			redraw = w.Prev()
		case key.KeyDown:
			redraw = w.Next()
		case key.KeyTab:
			redraw = w.CompleteToSelection()
		case key.KeyEnter:
			if choice, idx, ok := w.Selected(); ok {
				return finish(w, opts, out, choice, idx)
			}
		case key.KeyEscape:
			return cancel(w, opts, out)
		}
		if redraw && !opts.Silent {
			w.RenderSelect(out)
		}
	}
}

// RunLR drives the horizontal select session. Left and Right browse,
// Home and End jump to the first and last match, and the kill keys reset
// the filter. width is the terminal column count used to keep the row on
// one line; zero disables the check.
func RunLR(w *Widget, opts *grab.Options, rd *grab.Reader, out *display.Output, width int) int {
	render := func() {
		if !opts.Silent {
			w.RenderLR(out, opts.Highlight, width)
		}
	}
	render()
	for {
		ev, err := rd.Next()
		if err != nil {
			if errors.Is(err, grab.ErrTimedOut) {
				return timedOut(w, opts, out)
			}
			return cancel(w, opts, out)
		}

		redraw := false
		switch ev.Key {
		case key.KeyChar:
			w.InsertChar(opts.MapCase(ev.Ch))
			redraw = true
		case key.KeyBackspace:
			redraw = w.Backspace()
		case key.KeyDelete:
			redraw = w.DeleteForward()
		case key.KeyLeft, key.KeyUp:
			redraw = w.Prev()
		case key.KeyRight, key.KeyDown:
			redraw = w.Next()
		case key.KeyHome:
			redraw = w.First()
		case key.KeyEnd:
			redraw = w.Last()
		case key.KeyKillToEnd, key.KeyKillToStart, key.KeyKillWordBack:
			w.ClearFilter()
			redraw = true
		case key.KeyTab:
			redraw = w.CompleteToSelection()
		case key.KeyEnter:
			if choice, idx, ok := w.Selected(); ok {
				return finish(w, opts, out, choice, idx)
			}
		case key.KeyEscape:
			return cancel(w, opts, out)
		}
		if redraw {
			render()
		}
	}
}
