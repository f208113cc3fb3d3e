// Package selector implements the inline select modes: the user types a
// filter, matching options are narrowed by case-insensitive prefix, and
// the chosen option's position in the original list becomes the exit
// status. The single-line mode shows one match at a time; the lr mode
// lays all matches out horizontally with the selection highlighted.
package selector

import (
	"strings"
)

// Widget holds the interactive state shared by both select modes: the
// filter text being edited, the matching option indices, and which match
// is selected.
type Widget struct {
	options  []string
	filter   []byte
	cursor   int
	matches  []int
	matchIdx int
	prevCol  int // columns between the widget start and the terminal cursor
}

// NewWidget builds a widget over the option list. A non-empty deflt that
// equals an option, ignoring case, starts out selected.
func NewWidget(options []string, deflt string) *Widget {
	w := &Widget{options: options}
	w.recompute()
	if deflt != "" {
		dl := strings.ToLower(deflt)
		for i, idx := range w.matches {
			if strings.ToLower(options[idx]) == dl {
				w.matchIdx = i
				break
			}
		}
	}
	return w
}

// computeMatches returns the indices of options whose lowercase form
// starts with the lowercase filter.
func computeMatches(options []string, filter string) []int {
	fl := strings.ToLower(filter)
	var out []int
	for i, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), fl) {
			out = append(out, i)
		}
	}
	return out
}

// recompute refreshes the match list after a filter change. The selected
// match keeps its position when it still exists, otherwise it snaps back
// to the first match.
func (w *Widget) recompute() {
	w.matches = computeMatches(w.options, string(w.filter))
	if w.matchIdx >= len(w.matches) {
		w.matchIdx = 0
	}
}

// Filter returns the current filter text.
func (w *Widget) Filter() string { return string(w.filter) }

// Cursor returns the cursor position within the filter.
func (w *Widget) Cursor() int { return w.cursor }

// Matches returns the indices of the currently matching options.
func (w *Widget) Matches() []int { return w.matches }

// HasMatches reports whether any option matches the filter.
func (w *Widget) HasMatches() bool { return len(w.matches) > 0 }

// Selected returns the selected option and its index in the original
// list. ok is false when nothing matches.
func (w *Widget) Selected() (string, int, bool) {
	if len(w.matches) == 0 {
		return "", 0, false
	}
	idx := w.matches[w.matchIdx]
	return w.options[idx], idx, true
}

// DefaultIndex finds deflt in the full option list, ignoring case.
func (w *Widget) DefaultIndex(deflt string) (int, bool) {
	if deflt == "" {
		return 0, false
	}
	dl := strings.ToLower(deflt)
	for i, opt := range w.options {
		if strings.ToLower(opt) == dl {
			return i, true
		}
	}
	return 0, false
}

// InsertChar inserts ch into the filter at the cursor.
func (w *Widget) InsertChar(ch byte) {
	w.filter = append(w.filter, 0)
	copy(w.filter[w.cursor+1:], w.filter[w.cursor:])
	w.filter[w.cursor] = ch
	w.cursor++
	w.recompute()
}

// Backspace removes the character before the cursor.
func (w *Widget) Backspace() bool {
	if w.cursor == 0 {
		return false
	}
	w.filter = append(w.filter[:w.cursor-1], w.filter[w.cursor:]...)
	w.cursor--
	w.recompute()
	return true
}

// DeleteForward removes the character under the cursor.
func (w *Widget) DeleteForward() bool {
	if w.cursor >= len(w.filter) {
		return false
	}
	w.filter = append(w.filter[:w.cursor], w.filter[w.cursor+1:]...)
	w.recompute()
	return true
}

// CursorLeft moves the cursor one position left.
func (w *Widget) CursorLeft() bool {
	if w.cursor == 0 {
		return false
	}
	w.cursor--
	return true
}

// CursorRight moves the cursor one position right.
func (w *Widget) CursorRight() bool {
	if w.cursor >= len(w.filter) {
		return false
	}
	w.cursor++
	return true
}

// CursorHome moves the cursor to the start and returns how far it moved.
func (w *Widget) CursorHome() int {
	n := w.cursor
	w.cursor = 0
	return n
}

// CursorEnd moves the cursor past the last character and returns how far
// it moved.
func (w *Widget) CursorEnd() int {
	n := len(w.filter) - w.cursor
	w.cursor = len(w.filter)
	return n
}

// KillToEnd removes everything from the cursor onward.
func (w *Widget) KillToEnd() bool {
	if w.cursor >= len(w.filter) {
		return false
	}
	w.filter = w.filter[:w.cursor]
	w.recompute()
	return true
}

// KillToStart removes everything before the cursor.
func (w *Widget) KillToStart() bool {
	if w.cursor == 0 {
		return false
	}
	w.filter = append([]byte(nil), w.filter[w.cursor:]...)
	w.cursor = 0
	w.recompute()
	return true
}

// KillWordBack removes the space-delimited word before the cursor.
func (w *Widget) KillWordBack() bool {
	if w.cursor == 0 {
		return false
	}
	pos := w.cursor
	for pos > 0 && w.filter[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && w.filter[pos-1] != ' ' {
		pos--
	}
	w.filter = append(w.filter[:pos], w.filter[w.cursor:]...)
	w.cursor = pos
	w.recompute()
	return true
}

// ClearFilter wipes the filter entirely, as the kill keys do in lr mode.
func (w *Widget) ClearFilter() {
	w.filter = nil
	w.cursor = 0
	w.recompute()
}

// Prev moves the selection to the previous match, wrapping around.
func (w *Widget) Prev() bool {
	if len(w.matches) == 0 {
		return false
	}
	if w.matchIdx == 0 {
		w.matchIdx = len(w.matches) - 1
	} else {
		w.matchIdx--
	}
	return true
}

// Next moves the selection to the next match, wrapping around.
func (w *Widget) Next() bool {
	if len(w.matches) == 0 {
		return false
	}
	w.matchIdx = (w.matchIdx + 1) % len(w.matches)
	return true
}

// First selects the first match.
func (w *Widget) First() bool {
	if len(w.matches) == 0 {
		return false
	}
	w.matchIdx = 0
	return true
}

// Last selects the last match.
func (w *Widget) Last() bool {
	if len(w.matches) == 0 {
		return false
	}
	w.matchIdx = len(w.matches) - 1
	return true
}

// CompleteToSelection replaces the filter with the selected option, the
// way Tab completes, and keeps that option selected under the new filter.
func (w *Widget) CompleteToSelection() bool {
	if len(w.matches) == 0 {
		return false
	}
	selected := w.options[w.matches[w.matchIdx]]
	w.filter = []byte(selected)
	w.cursor = len(w.filter)
	w.matches = computeMatches(w.options, selected)
	w.matchIdx = 0
	sl := strings.ToLower(selected)
	for i, idx := range w.matches {
		if strings.ToLower(w.options[idx]) == sl {
			w.matchIdx = i
			break
		}
	}
	return true
}
