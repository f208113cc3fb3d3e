package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/grab"
	"github.com/dshills/grabchars/pkg/key"
	"github.com/dshills/grabchars/pkg/mask"
	"github.com/dshills/grabchars/pkg/term"
)

// session is one raw-mode read: the keystroke source, the output router
// and the terminal state to put back afterwards.
type session struct {
	rd    *grab.Reader
	out   *display.Output
	state *term.State
}

// openSession arms the signal handlers, switches the terminal into
// character-at-a-time mode and builds the keystroke pipeline. When
// stdin is a pipe the mode switch is skipped and the pipe is read as
// typed input, which is how the scripted tests drive a whole session.
func openSession(opts *grab.Options, cfg *Config) (*session, error) {
	exitStatus.Store(-1)
	setupSignals()

	s := &session{out: opts.NewOutput(os.Stdout, os.Stderr)}
	fd := int(os.Stdin.Fd())
	if isatty.IsTerminal(os.Stdin.Fd()) {
		state, err := term.MakeRaw(fd, opts.Flush)
		if err != nil {
			return nil, fmt.Errorf("failed to set raw mode: %w", err)
		}
		s.state = state
	}

	dec := key.NewDecoder(key.NewFD(fd), time.Duration(cfg.EscapeDelayMS)*time.Millisecond)
	s.rd = grab.NewReader(dec, opts.Timeout)
	return s, nil
}

// close ends the display line, puts the terminal back and records the
// session status for Execute.
func (s *session) close(status int) {
	s.out.Newline()
	if s.state != nil {
		s.state.Restore()
	}
	exitStatus.Store(int32(status))
}

// runGrab runs the default mode, or mask mode when -m was given.
func runGrab(cmd *cobra.Command, f *grabFlags) error {
	opts, err := f.build(cmd.Flags(), GlobalConfig)
	if err != nil {
		return err
	}

	var elems []mask.Element
	if cmd.Flags().Changed("mask") {
		elems, err = mask.Compile(f.mask)
		if err != nil {
			return fmt.Errorf("-m option: %v", err)
		}
		if len(elems) == 0 {
			return errors.New("-m option: mask is empty")
		}
	}

	s, err := openSession(opts, GlobalConfig)
	if err != nil {
		return err
	}
	// Covers panic unwinds; Restore is once-gated, so the normal exit
	// through close is unaffected.
	defer term.RestoreSaved()

	var status int
	if elems != nil {
		log.Printf("mask session: %d elements, timeout=%s", len(elems), opts.Timeout)
		status = mask.Run(mask.New(elems), opts, s.rd, s.out)
	} else {
		log.Printf("read session: count=%d erase=%v timeout=%s", opts.Count, opts.EraseActive(), opts.Timeout)
		status = grab.Run(opts, s.rd, s.out)
	}
	s.close(status)
	return nil
}
