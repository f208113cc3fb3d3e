package grab

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/dshills/grabchars/pkg/key"
)

// ErrTimedOut is returned by Reader.Next when the session deadline passes
// before another keystroke arrives.
var ErrTimedOut = errors.New("timed out waiting for input")

// pollSlice bounds a single wait so the deadline is rechecked regularly
// even when no input arrives.
const pollSlice = 100 * time.Millisecond

// Reader hands out decoded keystrokes while enforcing the session
// deadline and retrying reads interrupted by signals.
type Reader struct {
	dec      *key.Decoder
	deadline time.Time
}

// NewReader wraps dec with the session's timeout. A zero timeout means
// the session never expires.
func NewReader(dec *key.Decoder, timeout time.Duration) *Reader {
	r := &Reader{dec: dec}
	if timeout > 0 {
		r.deadline = time.Now().Add(timeout)
	}
	return r
}

// Next returns the next keystroke. io.EOF propagates when input is
// exhausted; ErrTimedOut is returned once the deadline has passed. EINTR
// from either polling or reading is retried, so stray signals do not end
// the session.
func (r *Reader) Next() (key.Event, error) {
	for {
		if !r.deadline.IsZero() {
			remaining := time.Until(r.deadline)
			if remaining <= 0 {
				return key.Event{}, ErrTimedOut
			}
			slice := pollSlice
			if remaining < slice {
				slice = remaining
			}
			ok, err := r.dec.Wait(slice)
			if err != nil {
				if errors.Is(err, unix.EINTR) {
					continue
				}
				return key.Event{}, err
			}
			if !ok {
				continue
			}
		}
		ev, err := r.dec.ReadKey()
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return key.Event{}, err
		}
		return ev, nil
	}
}
