// Package testutil provides shared test helpers, chiefly a scripted
// keystroke source that stands in for the terminal file descriptor.
package testutil

import (
	"io"
	"time"
)

type stepKind uint8

const (
	stepByte stepKind = iota
	stepPause
	stepReadErr
	stepPollErr
)

// Step is one scripted input action: a byte to deliver, a gap in typing,
// or an injected error.
type Step struct {
	kind stepKind
	b    byte
	err  error
}

// Bytes scripts the bytes of s arriving back to back.
func Bytes(s string) []Step {
	steps := make([]Step, len(s))
	for i := 0; i < len(s); i++ {
		steps[i] = Step{kind: stepByte, b: s[i]}
	}
	return steps
}

// Byte scripts a single byte.
func Byte(b byte) Step {
	return Step{kind: stepByte, b: b}
}

// Pause scripts a gap in typing: the next Poll reports nothing readable.
func Pause() Step {
	return Step{kind: stepPause}
}

// ReadErr scripts a read failure.
func ReadErr(err error) Step {
	return Step{kind: stepReadErr, err: err}
}

// PollErr scripts a poll failure.
func PollErr(err error) Step {
	return Step{kind: stepPollErr, err: err}
}

// Script replays a fixed sequence of input steps. It implements the
// decoder's ByteSource. Once the script is exhausted it behaves like a
// closed pipe: polls report readable and reads return io.EOF.
type Script struct {
	steps []Step
	pos   int
}

// NewScript builds a script from steps; []Step arguments produced by Bytes
// are flattened in place.
func NewScript(parts ...any) *Script {
	s := &Script{}
	for _, p := range parts {
		switch v := p.(type) {
		case Step:
			s.steps = append(s.steps, v)
		case []Step:
			s.steps = append(s.steps, v...)
		case string:
			s.steps = append(s.steps, Bytes(v)...)
		case byte:
			s.steps = append(s.steps, Byte(v))
		default:
			panic("testutil: unsupported script part")
		}
	}
	return s
}

// ReadByte delivers the next scripted byte or error. Pauses are invisible
// to reads; they only matter to Poll.
func (s *Script) ReadByte() (byte, error) {
	for s.pos < len(s.steps) {
		st := s.steps[s.pos]
		s.pos++
		switch st.kind {
		case stepByte:
			return st.b, nil
		case stepReadErr:
			return 0, st.err
		}
		// pauses and poll errors pass a read by
	}
	return 0, io.EOF
}

// Poll reports whether the next read would find input. A scripted pause is
// consumed and reported as silence after sleeping out the requested wait,
// so deadline behavior is observable; everything else, including end of
// script, is readable immediately.
func (s *Script) Poll(timeout time.Duration) (bool, error) {
	for s.pos < len(s.steps) {
		switch st := s.steps[s.pos]; st.kind {
		case stepPause:
			s.pos++
			time.Sleep(timeout)
			return false, nil
		case stepPollErr:
			s.pos++
			return false, st.err
		default:
			return true, nil
		}
	}
	return true, nil
}

// Exhausted reports whether every scripted step has been consumed.
func (s *Script) Exhausted() bool {
	return s.pos >= len(s.steps)
}
