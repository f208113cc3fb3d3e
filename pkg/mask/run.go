package mask

import (
	"errors"

	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/grab"
	"github.com/dshills/grabchars/pkg/key"
)

// Run drives a mask session until the field completes, the reader times
// out or hits end of input, or the user cancels with Escape. Characters
// are case-mapped before filtering, rejected ones are dropped without
// feedback, and backspace erases whole cells including any literals it
// exposes. The return value is the exit status: the field length, or the
// cancelled/timed-out status codes.
func Run(a *Automaton, opts *grab.Options, rd *grab.Reader, out *display.Output) int {
	if lead := a.Start(); len(lead) > 0 && !opts.Silent {
		out.Echo(string(lead))
	}

loop:
	for !a.Complete() {
		ev, err := rd.Next()
		if err != nil {
			if errors.Is(err, grab.ErrTimedOut) {
				if opts.Default != "" && a.Empty() {
					return out.Default(opts.Default)
				}
				if !a.Empty() {
					out.Result(a.String())
				}
				return grab.StatusTimedOut
			}
			break
		}

		switch ev.Key {
		case key.KeyChar:
			ch := opts.MapCase(ev.Ch)
			if !opts.Allowed(ch) {
				continue
			}
			if echoed, ok := a.Accept(ch); ok && !opts.Silent {
				out.Echo(string(echoed))
			}
		case key.KeyBackspace:
			n := a.Backspace()
			if !opts.Silent {
				for i := 0; i < n; i++ {
					out.Left()
					out.ClearToEnd()
				}
			}
		case key.KeyEnter:
			if opts.Default != "" && a.Empty() {
				return out.Default(opts.Default)
			}
			switch {
			case opts.RetKey:
				if a.Satisfied() || a.Empty() {
					break loop
				}
			case a.HasUnbounded():
				if a.Satisfied() && !a.Empty() {
					break loop
				}
			}
			// Fixed-width fields submit by filling; Enter is inert.
		case key.KeyEscape:
			if !opts.Silent && !a.Empty() {
				out.EraseBack(a.Len())
			}
			return grab.StatusCancelled
		}
	}

	if !a.Empty() {
		out.Result(a.String())
	}
	return a.Len()
}
