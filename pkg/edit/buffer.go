// Package edit implements the in-memory line editor behind interactive
// input: a byte buffer with a cursor, plus the kill operations bound to
// the control keys. Operations mutate the buffer and report what moved;
// drawing is the caller's business.
package edit

// Buffer is an editable byte sequence with a cursor. The cursor sits
// between cells, ranging from 0 (before the first byte) to Len (after the
// last). Every operation leaves the cursor inside that range.
type Buffer struct {
	buf    []byte
	cursor int
}

// NewBuffer returns an empty buffer with the cursor at the start.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int { return len(b.buf) }

// Cursor returns the cursor position.
func (b *Buffer) Cursor() int { return b.cursor }

// Bytes returns the buffer contents. The slice aliases internal storage
// and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.buf }

// String returns the buffer contents as a string.
func (b *Buffer) String() string { return string(b.buf) }

// Insert places ch at the cursor and advances past it.
func (b *Buffer) Insert(ch byte) {
	b.buf = append(b.buf, 0)
	copy(b.buf[b.cursor+1:], b.buf[b.cursor:])
	b.buf[b.cursor] = ch
	b.cursor++
}

// Backspace removes the byte before the cursor. It reports false at the
// start of the buffer, where there is nothing to remove.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.buf = append(b.buf[:b.cursor-1], b.buf[b.cursor:]...)
	b.cursor--
	return true
}

// Delete removes the byte under the cursor without moving it. It reports
// false at the end of the buffer.
func (b *Buffer) Delete() bool {
	if b.cursor >= len(b.buf) {
		return false
	}
	b.buf = append(b.buf[:b.cursor], b.buf[b.cursor+1:]...)
	return true
}

// Left moves the cursor one cell left, reporting whether it moved.
func (b *Buffer) Left() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// Right moves the cursor one cell right, reporting whether it moved.
func (b *Buffer) Right() bool {
	if b.cursor >= len(b.buf) {
		return false
	}
	b.cursor++
	return true
}

// Home moves the cursor to the start and returns how many columns it
// moved, zero if it was already there.
func (b *Buffer) Home() int {
	n := b.cursor
	b.cursor = 0
	return n
}

// End moves the cursor past the last byte and returns how many columns it
// moved.
func (b *Buffer) End() int {
	n := len(b.buf) - b.cursor
	b.cursor = len(b.buf)
	return n
}

// KillToEnd removes everything from the cursor to the end and returns the
// number of bytes removed. The cursor does not move.
func (b *Buffer) KillToEnd() int {
	n := len(b.buf) - b.cursor
	b.buf = b.buf[:b.cursor]
	return n
}

// KillToStart removes everything before the cursor and returns the number
// of bytes removed. The cursor lands on the start.
func (b *Buffer) KillToStart() int {
	n := b.cursor
	if n > 0 {
		b.buf = append(b.buf[:0], b.buf[b.cursor:]...)
		b.cursor = 0
	}
	return n
}

// KillWordBack removes the word before the cursor: first any run of
// spaces, then the run of non-spaces behind it. Only plain spaces delimit
// words. Returns the number of bytes removed.
func (b *Buffer) KillWordBack() int {
	pos := b.cursor
	for pos > 0 && b.buf[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && b.buf[pos-1] != ' ' {
		pos--
	}
	n := b.cursor - pos
	if n > 0 {
		b.buf = append(b.buf[:pos], b.buf[b.cursor:]...)
		b.cursor = pos
	}
	return n
}
