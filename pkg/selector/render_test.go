package selector

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/grab"
)

func testOutput() (*display.Output, *bytes.Buffer) {
	stderr := &bytes.Buffer{}
	return &display.Output{Stdout: &bytes.Buffer{}, Stderr: stderr}, stderr
}

func TestRenderSelectInitial(t *testing.T) {
	w := NewWidget([]string{"yes", "no"}, "")
	out, stderr := testOutput()

	w.RenderSelect(out)
	assert.Equal(t, "\x1b[K → yes (2 matches) ↑↓\x1b[21D", stderr.String(),
		"the cursor parks at the widget start, ready for filter input")
}

func TestRenderSelectSingular(t *testing.T) {
	w := NewWidget([]string{"yes"}, "")
	out, stderr := testOutput()

	w.RenderSelect(out)
	assert.Equal(t, "\x1b[K → yes (1 match) ↑↓\x1b[19D", stderr.String())
}

func TestRenderSelectNoMatches(t *testing.T) {
	w := NewWidget([]string{"yes"}, "")
	w.InsertChar('z')
	out, stderr := testOutput()

	w.RenderSelect(out)
	assert.Equal(t, "\x1b[Kz → (no matches) (0 matches) ↑↓\x1b[30D", stderr.String())
}

func TestRenderSelectTypingSequence(t *testing.T) {
	w := NewWidget([]string{"alpha", "beta"}, "")
	out, stderr := testOutput()

	w.RenderSelect(out)
	w.InsertChar('a')
	w.RenderSelect(out)
	w.InsertChar('l')
	w.RenderSelect(out)

	want := "\x1b[K → alpha (2 matches) ↑↓\x1b[23D" +
		"\x1b[Ka → alpha (1 match) ↑↓\x1b[21D" +
		"\x1b[1D\x1b[Kal → alpha (1 match) ↑↓\x1b[21D"
	assert.Equal(t, want, stderr.String())
}

func TestClear(t *testing.T) {
	w := NewWidget([]string{"alpha"}, "")
	out, stderr := testOutput()

	w.InsertChar('a')
	w.RenderSelect(out)
	stderr.Reset()

	w.Clear(out)
	assert.Equal(t, "\x1b[1D\x1b[K", stderr.String())

	stderr.Reset()
	w.Clear(out)
	assert.Equal(t, "\x1b[K", stderr.String(), "clearing again is harmless")
}

func TestRenderLRStyles(t *testing.T) {
	tests := []struct {
		name  string
		style grab.HighlightStyle
		want  string
	}{
		{
			"reverse video",
			grab.HighlightReverse,
			"\x1b[K → \x1b[7mcat\x1b[27m dog  (2 matches)\x1b[23D",
		},
		{
			"brackets",
			grab.HighlightBracket,
			"\x1b[K → [cat] dog  (2 matches)\x1b[25D",
		},
		{
			"arrows",
			grab.HighlightArrow,
			"\x1b[K → >cat< dog  (2 matches)\x1b[25D",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWidget([]string{"cat", "dog"}, "")
			out, stderr := testOutput()

			w.RenderLR(out, tt.style, 0)
			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestRenderLRHighlightMoves(t *testing.T) {
	w := NewWidget([]string{"cat", "dog"}, "")
	w.Next()
	out, stderr := testOutput()

	w.RenderLR(out, grab.HighlightBracket, 0)
	assert.Equal(t, "\x1b[K → cat [dog]  (2 matches)\x1b[25D", stderr.String())
}

func TestRenderLRNoMatches(t *testing.T) {
	w := NewWidget([]string{"cat"}, "")
	w.InsertChar('z')
	out, stderr := testOutput()

	w.RenderLR(out, grab.HighlightReverse, 0)
	assert.Equal(t, "\x1b[Kz → (no matches)\x1b[15D", stderr.String())
}

func TestRenderLRFallsBackWhenNarrow(t *testing.T) {
	w := NewWidget([]string{"alphabet", "alphanumeric"}, "")

	out, stderr := testOutput()
	w.RenderLR(out, grab.HighlightReverse, 30)
	assert.Equal(t, "\x1b[K → alphabet (2 matches) ↑↓\x1b[26D", stderr.String(),
		"a row too wide for the terminal degrades to the one-match layout")

	out, stderr = testOutput()
	w.RenderLR(out, grab.HighlightReverse, 80)
	assert.Contains(t, stderr.String(), "\x1b[7malphabet\x1b[27m alphanumeric",
		"a wide terminal gets the full row")
}
