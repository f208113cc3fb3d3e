package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, s string) []Element {
	t.Helper()
	elems, err := Compile(s)
	require.NoError(t, err)
	return elems
}

func feed(t *testing.T, a *Automaton, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		_, ok := a.Accept(s[i])
		require.True(t, ok, "character %q should be accepted", s[i])
	}
}

func TestCompileClasses(t *testing.T) {
	elems := mustCompile(t, "UlcnxpW.")
	require.Len(t, elems, 8)

	classes := []Class{
		ClassUpper, ClassLower, ClassAlpha, ClassDigit,
		ClassHex, ClassPunct, ClassSpace, ClassAny,
	}
	for i, want := range classes {
		assert.Equal(t, want, elems[i].Class)
		assert.Equal(t, QuantOne, elems[i].Quant)
	}
}

func TestCompileLiterals(t *testing.T) {
	// An escaped class letter is a plain literal, not a class.
	elems := mustCompile(t, `a\nb`)
	require.Len(t, elems, 3)
	for _, e := range elems {
		assert.Equal(t, ClassLiteral, e.Class)
	}
	assert.Equal(t, byte('a'), elems[0].Lit)
	assert.Equal(t, byte('n'), elems[1].Lit)
	assert.Equal(t, byte('b'), elems[2].Lit)
}

func TestCompileQuantifiers(t *testing.T) {
	tests := []struct {
		mask string
		want Quantifier
	}{
		{"n*", QuantStar},
		{"c+", QuantPlus},
		{"x?", QuantOpt},
	}
	for _, tt := range tests {
		elems := mustCompile(t, tt.mask)
		require.Len(t, elems, 1, "mask %q", tt.mask)
		assert.Equal(t, tt.want, elems[0].Quant, "mask %q", tt.mask)
	}
}

func TestCompileBracketClass(t *testing.T) {
	elems := mustCompile(t, "[a-c]")
	require.Len(t, elems, 1)
	require.Equal(t, ClassCustom, elems[0].Class)
	assert.True(t, elems[0].Matches('b'))
	assert.False(t, elems[0].Matches('d'))

	negated := mustCompile(t, "[^0-9]")
	require.Len(t, negated, 1)
	assert.True(t, negated[0].Matches('z'))
	assert.False(t, negated[0].Matches('5'))

	quantified := mustCompile(t, "[0-9]+")
	require.Len(t, quantified, 1)
	assert.Equal(t, QuantPlus, quantified[0].Quant)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		mask string
		want string
	}{
		{"*n", "unexpected quantifier '*' at position 0 in mask"},
		{"n*?", "unexpected quantifier '?' at position 2 in mask"},
		{"[abc", "unclosed '[' in mask"},
		{"a*", "quantifier '*' cannot be applied to a literal character"},
		{`\c+`, "quantifier '+' cannot be applied to a literal character"},
	}
	for _, tt := range tests {
		_, err := Compile(tt.mask)
		assert.EqualError(t, err, tt.want, "mask %q", tt.mask)
	}

	_, err := Compile("[z-a]")
	assert.ErrorContains(t, err, "invalid character class '[z-a]'")
}

func TestCompileTrailingBackslashDropped(t *testing.T) {
	elems := mustCompile(t, `nn\`)
	assert.Len(t, elems, 2)
}

func TestCompileEmpty(t *testing.T) {
	elems := mustCompile(t, "")
	assert.Empty(t, elems)
}

func TestElementMatches(t *testing.T) {
	tests := []struct {
		mask string
		yes  []byte
		no   []byte
	}{
		{"U", []byte{'A', 'Z'}, []byte{'a', '0', '-'}},
		{"l", []byte{'a', 'z'}, []byte{'A', '0'}},
		{"c", []byte{'a', 'Q'}, []byte{'7', '.'}},
		{"n", []byte{'0', '9'}, []byte{'a', ' '}},
		{"x", []byte{'0', 'a', 'F'}, []byte{'g', 'z'}},
		{"p", []byte{'.', '-', '!'}, []byte{'a', '0', ' '}},
		{"W", []byte{' ', '\t'}, []byte{'a', 0x0B}},
		{".", []byte{'a', '0', ' ', '~'}, nil},
		{"z", []byte{'z'}, []byte{'Z', 'y'}},
	}
	for _, tt := range tests {
		elems := mustCompile(t, tt.mask)
		require.Len(t, elems, 1, "mask %q", tt.mask)
		for _, ch := range tt.yes {
			assert.True(t, elems[0].Matches(ch), "mask %q should match %q", tt.mask, ch)
		}
		for _, ch := range tt.no {
			assert.False(t, elems[0].Matches(ch), "mask %q should reject %q", tt.mask, ch)
		}
	}
}

func TestPhoneNumber(t *testing.T) {
	a := New(mustCompile(t, "nnn-nnnn"))
	assert.Empty(t, a.Start())

	feed(t, a, "55")
	echoed, ok := a.Accept('5')
	require.True(t, ok)
	assert.Equal(t, "5-", string(echoed), "the separator splices in when the run fills")
	assert.Equal(t, "555-", a.String())
	assert.False(t, a.Complete())

	feed(t, a, "1234")
	assert.Equal(t, "555-1234", a.String())
	assert.True(t, a.Complete())
}

func TestLeadingAndTrailingLiterals(t *testing.T) {
	a := New(mustCompile(t, "(nnn)nnn-nnnn"))
	assert.Equal(t, "(", string(a.Start()))

	feed(t, a, "5551234567")
	assert.Equal(t, "(555)123-4567", a.String())
	assert.True(t, a.Complete())
}

func TestRejectsNonMatching(t *testing.T) {
	a := New(mustCompile(t, "nnn"))
	_, ok := a.Accept('a')
	assert.False(t, ok)
	assert.True(t, a.Empty())
}

func TestBackspaceChainsThroughLiterals(t *testing.T) {
	a := New(mustCompile(t, "nnn-nnnn"))
	feed(t, a, "5551")
	require.Equal(t, "555-1", a.String())

	assert.Equal(t, 2, a.Backspace(), "the digit and the exposed separator go together")
	assert.Equal(t, "555", a.String())

	assert.Equal(t, 1, a.Backspace())
	assert.Equal(t, "55", a.String())
}

func TestBackspaceThenRetype(t *testing.T) {
	a := New(mustCompile(t, "nnn-nnnn"))
	feed(t, a, "5551")
	a.Backspace()
	require.Equal(t, "555", a.String())

	echoed, ok := a.Accept('9')
	require.True(t, ok)
	assert.Equal(t, "-9", string(echoed), "the separator splices back in")
	assert.Equal(t, "555-9", a.String())
}

func TestBackspaceClearsLoneLiterals(t *testing.T) {
	a := New(mustCompile(t, "(nnn)"))
	a.Start()
	feed(t, a, "5")
	require.Equal(t, "(5", a.String())

	assert.Equal(t, 2, a.Backspace(), "nothing useful remains once only literals are left")
	assert.True(t, a.Empty())
}

func TestAcceptAfterFullErase(t *testing.T) {
	a := New(mustCompile(t, "(nnn)"))
	a.Start()
	feed(t, a, "5")
	a.Backspace()
	require.True(t, a.Empty())

	echoed, ok := a.Accept('7')
	require.True(t, ok)
	assert.Equal(t, "(7", string(echoed), "leading literals come back with the first character")
	assert.Equal(t, "(7", a.String())
}

func TestOptionalElementSkipped(t *testing.T) {
	a := New(mustCompile(t, "[0-9]?x"))

	echoed, ok := a.Accept('a')
	require.True(t, ok, "a hex letter skips the optional digit")
	assert.Equal(t, "a", string(echoed))
	assert.True(t, a.Complete())
}

func TestOptionalElementTaken(t *testing.T) {
	a := New(mustCompile(t, "[0-9]?x"))

	feed(t, a, "5")
	assert.False(t, a.Complete())
	feed(t, a, "f")
	assert.Equal(t, "5f", a.String())
	assert.True(t, a.Complete())
}

func TestStarRuns(t *testing.T) {
	a := New(mustCompile(t, "n*x"))

	feed(t, a, "123")
	assert.False(t, a.Satisfied(), "the hex cell still needs a character")
	feed(t, a, "f")
	assert.Equal(t, "123f", a.String())
	assert.True(t, a.Satisfied())
	assert.False(t, a.Complete(), "unbounded masks never complete on their own")
}

func TestStarMatchesNothing(t *testing.T) {
	a := New(mustCompile(t, "n*x"))

	feed(t, a, "f")
	assert.Equal(t, "f", a.String())
	assert.True(t, a.Satisfied())
}

func TestWhitespaceElement(t *testing.T) {
	a := New(mustCompile(t, "n+Wc"))

	feed(t, a, "12 x")
	assert.Equal(t, "12 x", a.String())
	assert.True(t, a.Satisfied())
}

func TestWhitespaceExcludesVerticalTab(t *testing.T) {
	a := New(mustCompile(t, "n+Wc"))
	feed(t, a, "12")

	_, ok := a.Accept(0x0B)
	assert.False(t, ok)
}

func TestAllLiteralMask(t *testing.T) {
	a := New(mustCompile(t, "->"))
	assert.Equal(t, "->", string(a.Start()))
	assert.True(t, a.Complete())
	assert.Equal(t, 2, a.Len())
}

func TestEmptyMaskIsComplete(t *testing.T) {
	a := New(nil)
	assert.Empty(t, a.Start())
	assert.True(t, a.Complete())
	assert.True(t, a.Satisfied())
}

func TestHasUnbounded(t *testing.T) {
	assert.False(t, New(mustCompile(t, "nnn")).HasUnbounded())
	assert.False(t, New(mustCompile(t, "n?x")).HasUnbounded())
	assert.True(t, New(mustCompile(t, "n*x")).HasUnbounded())
	assert.True(t, New(mustCompile(t, "c+")).HasUnbounded())
}

func TestOptionalTailNeverAutoCompletes(t *testing.T) {
	// The final cell must be an exactly-one element for the field to
	// close by itself; an optional tail leaves it open for Enter.
	a := New(mustCompile(t, "nn?"))
	feed(t, a, "12")
	assert.False(t, a.Complete())
	assert.True(t, a.Satisfied())
}
