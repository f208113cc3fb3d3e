package mask

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/grabchars/internal/testutil"
	"github.com/dshills/grabchars/pkg/display"
	"github.com/dshills/grabchars/pkg/grab"
	"github.com/dshills/grabchars/pkg/key"
)

func session(opts *grab.Options, script *testutil.Script) (*grab.Reader, *display.Output, *bytes.Buffer, *bytes.Buffer) {
	rd := grab.NewReader(key.NewDecoder(script, 0), opts.Timeout)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return rd, opts.NewOutput(stdout, stderr), stdout, stderr
}

func runMask(t *testing.T, maskStr string, opts *grab.Options, script *testutil.Script) (int, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	a := New(mustCompile(t, maskStr))
	rd, out, stdout, stderr := session(opts, script)
	return Run(a, opts, rd, out), stdout, stderr
}

func TestRunFillsAndCompletes(t *testing.T) {
	status, stdout, stderr := runMask(t, "nnn-nnnn", &grab.Options{},
		testutil.NewScript("5551234"))

	assert.Equal(t, 8, status, "status counts every cell, separator included")
	assert.Equal(t, "555-1234", stdout.String())
	assert.Equal(t, "555-1234", stderr.String(), "the spliced separator is echoed too")
}

func TestRunEchoesLeadingLiterals(t *testing.T) {
	status, stdout, stderr := runMask(t, "(nn)", &grab.Options{},
		testutil.NewScript("12"))

	assert.Equal(t, 4, status)
	assert.Equal(t, "(12)", stdout.String())
	assert.Equal(t, "(12)", stderr.String())
}

func TestRunDropsRejectedQuietly(t *testing.T) {
	status, stdout, stderr := runMask(t, "nn", &grab.Options{},
		testutil.NewScript("ab12"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "12", stdout.String())
	assert.Equal(t, "12", stderr.String())
}

func TestRunCaseMapsBeforeFiltering(t *testing.T) {
	// The exclude pattern sees the already-uppercased character.
	opts := &grab.Options{Upper: true, Exclude: regexp.MustCompile("^[A]$")}
	status, stdout, _ := runMask(t, "U", opts, testutil.NewScript("ab"))

	assert.Equal(t, 1, status)
	assert.Equal(t, "B", stdout.String())
}

func TestRunBackspaceErasesCell(t *testing.T) {
	status, stdout, stderr := runMask(t, "nn", &grab.Options{},
		testutil.NewScript("1\x7f\x7f22"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "22", stdout.String())
	assert.Equal(t, "1"+display.CursorLeft+display.ClearToEOL+"22", stderr.String(),
		"backspacing an empty field draws nothing")
}

func TestRunBackspaceChainsOnScreen(t *testing.T) {
	status, stdout, stderr := runMask(t, "nnn-nnnn", &grab.Options{},
		testutil.NewScript("5551\x7f"))

	assert.Equal(t, 3, status, "input ended with three digits standing")
	assert.Equal(t, "555", stdout.String())
	erase := display.CursorLeft + display.ClearToEOL
	assert.Equal(t, "555-1"+erase+erase, stderr.String(),
		"the digit and the exposed separator are both wiped")
}

func TestRunEnterSubmitsUnbounded(t *testing.T) {
	status, stdout, _ := runMask(t, "n+", &grab.Options{},
		testutil.NewScript("12\r"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "12", stdout.String())
}

func TestRunEnterInertUntilSatisfied(t *testing.T) {
	status, stdout, _ := runMask(t, "n+", &grab.Options{},
		testutil.NewScript("\r5\r"))

	assert.Equal(t, 1, status)
	assert.Equal(t, "5", stdout.String())
}

func TestRunEnterInertOnFixedMask(t *testing.T) {
	status, stdout, _ := runMask(t, "nn", &grab.Options{},
		testutil.NewScript("1\r2"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "12", stdout.String())
}

func TestRunRetKeyAcceptsEmpty(t *testing.T) {
	status, stdout, _ := runMask(t, "nn", &grab.Options{RetKey: true},
		testutil.NewScript("\r"))

	assert.Equal(t, 0, status)
	assert.Empty(t, stdout.String())
}

func TestRunRetKeyStillNeedsSatisfied(t *testing.T) {
	// One digit of two: Enter cannot submit, so input runs out and the
	// partial field is delivered.
	status, stdout, _ := runMask(t, "nn", &grab.Options{RetKey: true},
		testutil.NewScript("1\r"))

	assert.Equal(t, 1, status)
	assert.Equal(t, "1", stdout.String())
}

func TestRunEscapeCancels(t *testing.T) {
	status, stdout, stderr := runMask(t, "nn", &grab.Options{},
		testutil.NewScript("1\x1b"))

	assert.Equal(t, grab.StatusCancelled, status)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "1\x1b[1D\x1b[K", stderr.String(), "the field is wiped from the screen")
}

func TestRunEscapeSilent(t *testing.T) {
	status, stdout, stderr := runMask(t, "nn", &grab.Options{Silent: true},
		testutil.NewScript("1\x1b"))

	assert.Equal(t, grab.StatusCancelled, status)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunTimeoutDeliversPartial(t *testing.T) {
	opts := &grab.Options{Timeout: 20 * time.Millisecond}
	status, stdout, _ := runMask(t, "nnnn", opts, testutil.NewScript(
		testutil.Bytes("12"), testutil.Pause(), testutil.Pause(), testutil.Pause(),
	))

	assert.Equal(t, grab.StatusTimedOut, status)
	assert.Equal(t, "12", stdout.String(), "a half-filled field is still delivered")
}

func TestRunTimeoutUsesDefaultWhenEmpty(t *testing.T) {
	opts := &grab.Options{Timeout: 10 * time.Millisecond, Default: "0000"}
	status, stdout, _ := runMask(t, "nnnn", opts, testutil.NewScript(
		testutil.Pause(), testutil.Pause(),
	))

	assert.Equal(t, 4, status)
	assert.Equal(t, "0000", stdout.String())
}

func TestRunLeadingLiteralBlocksDefault(t *testing.T) {
	// The auto-inserted "(" counts as input, so the default never fires.
	opts := &grab.Options{Timeout: 10 * time.Millisecond, Default: "99"}
	status, stdout, _ := runMask(t, "(nn)", opts, testutil.NewScript(
		testutil.Pause(), testutil.Pause(),
	))

	assert.Equal(t, grab.StatusTimedOut, status)
	assert.Equal(t, "(", stdout.String())
}

func TestRunDefaultOnEnter(t *testing.T) {
	status, stdout, _ := runMask(t, "nn", &grab.Options{Default: "42"},
		testutil.NewScript("\r"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "42", stdout.String())
}

func TestRunAllLiteralMask(t *testing.T) {
	status, stdout, stderr := runMask(t, "->", &grab.Options{}, testutil.NewScript())

	assert.Equal(t, 2, status, "a mask with no input cells completes immediately")
	assert.Equal(t, "->", stdout.String())
	assert.Equal(t, "->", stderr.String())
}

func TestRunEOFDeliversPartial(t *testing.T) {
	status, stdout, _ := runMask(t, "nnnn", &grab.Options{},
		testutil.NewScript("12"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "12", stdout.String())
}

func TestRunSilentSuppressesEchoOnly(t *testing.T) {
	status, stdout, stderr := runMask(t, "nn", &grab.Options{Silent: true},
		testutil.NewScript("12"))

	assert.Equal(t, 2, status)
	assert.Equal(t, "12", stdout.String(), "the finished field still prints")
	assert.Empty(t, stderr.String())
}

func TestRunRespliceAfterFullErase(t *testing.T) {
	status, stdout, stderr := runMask(t, "(nn)", &grab.Options{},
		testutil.NewScript("1\x7f2"))

	require.Equal(t, 2, status)
	assert.Equal(t, "(2", stdout.String())
	erase := display.CursorLeft + display.ClearToEOL
	assert.Equal(t, "(1"+erase+erase+"(2", stderr.String(),
		"erasing everything and retyping restores the opening literal")
}
