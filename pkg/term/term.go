// Package term switches the terminal into the character-at-a-time mode
// interactive reading needs, and restores it afterwards. Only canonical
// line assembly and echo are disabled; output processing and the signal
// keys keep working, so drawn newlines and Ctrl-C behave normally.
package term

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// State holds a terminal's original attributes for restoration.
type State struct {
	fd   int
	orig unix.Termios
	once sync.Once
}

var (
	savedMu sync.Mutex
	saved   *State
)

// MakeRaw puts the terminal on fd into character-at-a-time mode with echo
// off. Reads then block for exactly one byte (VMIN=1, VTIME=0). With flush
// set, input typed before the mode switch is discarded instead of
// satisfying the first reads.
func MakeRaw(fd int, flush bool) (*State, error) {
	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal attributes: %w", err)
	}
	st := &State{fd: fd, orig: *orig}

	raw := *orig
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	req := uint(ioctlSetTermios)
	if flush {
		req = ioctlSetTermiosFlush
	}
	if err := unix.IoctlSetTermios(fd, req, &raw); err != nil {
		return nil, fmt.Errorf("failed to set terminal attributes: %w", err)
	}

	savedMu.Lock()
	saved = st
	savedMu.Unlock()
	return st, nil
}

// Restore puts the terminal back to its original attributes, flushing any
// pending input so type-ahead does not leak to the next program. Extra
// calls after the first do nothing, which lets the normal exit path and
// the signal path race safely.
func (s *State) Restore() {
	s.once.Do(func() {
		_ = unix.IoctlSetTermios(s.fd, ioctlSetTermiosFlush, &s.orig)
	})
}

// RestoreSaved restores the most recently configured terminal. The signal
// path uses it because the handler cannot reach the State owned by main.
func RestoreSaved() {
	savedMu.Lock()
	st := saved
	savedMu.Unlock()
	if st != nil {
		st.Restore()
	}
}

// Width reports the terminal's column count, falling back to 80 when fd
// is not a terminal or the query fails.
func Width(fd int) int {
	w, _, err := xterm.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
