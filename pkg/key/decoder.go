package key

import "time"

// DefaultEscapeDelay is how long the decoder waits after a bare ESC for the
// rest of an escape sequence before reporting KeyEscape. Real sequences
// arrive in well under a millisecond; a human cannot type the follow-up
// bytes this fast.
const DefaultEscapeDelay = 50 * time.Millisecond

// ByteSource supplies raw input bytes to a Decoder. Production code reads
// a terminal file descriptor; tests substitute a scripted source.
type ByteSource interface {
	// ReadByte blocks until one byte is available and returns it.
	// It returns io.EOF when the source is exhausted.
	ReadByte() (byte, error)
	// Poll reports whether a byte can be read without blocking, waiting
	// up to timeout for one to arrive.
	Poll(timeout time.Duration) (bool, error)
}

// Decoder turns a raw byte stream into key events. It consumes exactly the
// bytes belonging to each keystroke, so unrecognized escape sequences do
// not leak their tail bytes into later reads.
type Decoder struct {
	src      ByteSource
	escDelay time.Duration
}

// NewDecoder returns a decoder reading from src. A zero escDelay selects
// DefaultEscapeDelay.
func NewDecoder(src ByteSource, escDelay time.Duration) *Decoder {
	if escDelay <= 0 {
		escDelay = DefaultEscapeDelay
	}
	return &Decoder{src: src, escDelay: escDelay}
}

// Wait blocks until input is available or the timeout elapses, reporting
// whether a subsequent ReadKey would find a byte waiting.
func (d *Decoder) Wait(timeout time.Duration) (bool, error) {
	return d.src.Poll(timeout)
}

// ReadKey reads and decodes the next keystroke. Errors from the first byte
// read, including io.EOF, are returned to the caller; read failures in the
// middle of an escape sequence degrade to KeyEscape or KeyUnknown instead,
// matching what the partial sequence most plausibly was.
func (d *Decoder) ReadKey() (Event, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return Event{}, err
	}
	switch b {
	case 0x01: // Ctrl-A
		return Event{Key: KeyHome}, nil
	case 0x02: // Ctrl-B
		return Event{Key: KeyLeft}, nil
	case 0x04: // Ctrl-D
		return Event{Key: KeyDelete}, nil
	case 0x05: // Ctrl-E
		return Event{Key: KeyEnd}, nil
	case 0x06: // Ctrl-F
		return Event{Key: KeyRight}, nil
	case 0x09:
		return Event{Key: KeyTab}, nil
	case 0x0A, 0x0D:
		return Event{Key: KeyEnter}, nil
	case 0x0B: // Ctrl-K
		return Event{Key: KeyKillToEnd}, nil
	case 0x15: // Ctrl-U
		return Event{Key: KeyKillToStart}, nil
	case 0x17: // Ctrl-W
		return Event{Key: KeyKillWordBack}, nil
	case 0x1B:
		return d.readEscape()
	case 0x7F, 0x08:
		return Event{Key: KeyBackspace}, nil
	}
	return Event{Key: KeyChar, Ch: b}, nil
}

// escState tracks progress through a CSI sequence after the leading ESC.
type escState uint8

const (
	escStart   escState = iota // ESC consumed, expecting '['
	escBracket                 // ESC [ consumed, expecting final byte or digit
	escParam                   // ESC [ digit consumed, expecting '~'
)

// readEscape runs after an ESC byte. If no byte follows within the escape
// delay the ESC was a keypress on its own; otherwise the bytes are consumed
// as a CSI sequence. Sequences the decoder does not recognize are consumed
// to their expected length and reported as KeyUnknown.
func (d *Decoder) readEscape() (Event, error) {
	avail, err := d.src.Poll(d.escDelay)
	if err != nil || !avail {
		return Event{Key: KeyEscape}, nil
	}

	state := escStart
	var param byte
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			if state == escStart {
				return Event{Key: KeyEscape}, nil
			}
			return Event{Key: KeyUnknown}, nil
		}
		switch state {
		case escStart:
			if b != '[' {
				return Event{Key: KeyUnknown}, nil
			}
			state = escBracket
		case escBracket:
			switch b {
			case 'A':
				return Event{Key: KeyUp}, nil
			case 'B':
				return Event{Key: KeyDown}, nil
			case 'C':
				return Event{Key: KeyRight}, nil
			case 'D':
				return Event{Key: KeyLeft}, nil
			case 'H':
				return Event{Key: KeyHome}, nil
			case 'F':
				return Event{Key: KeyEnd}, nil
			}
			if b >= '0' && b <= '9' {
				param = b
				state = escParam
				continue
			}
			return Event{Key: KeyUnknown}, nil
		case escParam:
			// One byte after the digit, normally '~'. Either way the
			// sequence ends here.
			if b != '~' {
				return Event{Key: KeyUnknown}, nil
			}
			switch param {
			case '1':
				return Event{Key: KeyHome}, nil
			case '3':
				return Event{Key: KeyDelete}, nil
			case '4':
				return Event{Key: KeyEnd}, nil
			}
			return Event{Key: KeyUnknown}, nil
		}
	}
}
