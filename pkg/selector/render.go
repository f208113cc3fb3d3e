package selector

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/grab"
)

// Rendering happens in place on the error stream: each redraw rewinds to
// the widget start, clears to end of line, writes the new line, and then
// parks the terminal cursor back inside the filter text. prevCol records
// where the cursor was left so the next rewind knows how far to go.

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "es"
}

// rewind moves back to the widget start and clears the old line.
func (w *Widget) rewind(out *display.Output) {
	if w.prevCol > 0 {
		out.CursorLeftN(w.prevCol)
	}
	out.ClearToEnd()
}

// reposition parks the cursor at its place in the filter text, given the
// total width just written.
func (w *Widget) reposition(out *display.Output, total int) {
	if tail := total - w.cursor; tail > 0 {
		out.CursorLeftN(tail)
	}
	w.prevCol = w.cursor
}

// Clear removes the widget from the screen before the result is printed
// or the session ends.
func (w *Widget) Clear(out *display.Output) {
	if w.prevCol > 0 {
		out.CursorLeftN(w.prevCol)
	}
	out.ClearToEnd()
	w.prevCol = 0
}

// selectLine builds the single-match line: the filter, the selected
// match or a placeholder, the match count, and the browse hint.
func (w *Widget) selectLine() string {
	match := "(no matches)"
	if len(w.matches) > 0 {
		match = w.options[w.matches[w.matchIdx]]
	}
	return fmt.Sprintf("%s → %s (%d match%s) ↑↓",
		w.filter, match, len(w.matches), plural(len(w.matches)))
}

// RenderSelect redraws the single-match widget.
func (w *Widget) RenderSelect(out *display.Output) {
	w.rewind(out)
	line := w.selectLine()
	out.Echo(line)
	w.reposition(out, runewidth.StringWidth(line))
}

// lrLine builds the horizontal line with every match visible and the
// selected one highlighted. The returned width excludes escape codes.
func (w *Widget) lrLine(style grab.HighlightStyle) (string, int) {
	var b strings.Builder
	prefix := fmt.Sprintf("%s → ", w.filter)
	b.WriteString(prefix)
	total := runewidth.StringWidth(prefix)

	for i, optIdx := range w.matches {
		if i > 0 {
			b.WriteByte(' ')
			total++
		}
		opt := w.options[optIdx]
		if i != w.matchIdx {
			b.WriteString(opt)
			total += runewidth.StringWidth(opt)
			continue
		}
		switch style {
		case grab.HighlightBracket:
			b.WriteByte('[')
			b.WriteString(opt)
			b.WriteByte(']')
			total += runewidth.StringWidth(opt) + 2
		case grab.HighlightArrow:
			b.WriteByte('>')
			b.WriteString(opt)
			b.WriteByte('<')
			total += runewidth.StringWidth(opt) + 2
		default:
			b.WriteString(display.ReverseOn)
			b.WriteString(opt)
			b.WriteString(display.ReverseOff)
			total += runewidth.StringWidth(opt)
		}
	}

	count := fmt.Sprintf("  (%d match%s)", len(w.matches), plural(len(w.matches)))
	b.WriteString(count)
	total += runewidth.StringWidth(count)
	return b.String(), total
}

// RenderLR redraws the horizontal widget. When width is positive and the
// full row will not fit on the line, the single-match layout is drawn
// instead so the display never wraps.
func (w *Widget) RenderLR(out *display.Output, style grab.HighlightStyle, width int) {
	w.rewind(out)
	if len(w.matches) == 0 {
		line := fmt.Sprintf("%s → (no matches)", w.filter)
		out.Echo(line)
		w.reposition(out, runewidth.StringWidth(line))
		return
	}
	line, total := w.lrLine(style)
	if width > 0 && total > width-1 {
		line = w.selectLine()
		total = runewidth.StringWidth(line)
	}
	out.Echo(line)
	w.reposition(out, total)
}
