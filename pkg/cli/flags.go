package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dshills/grabchars/pkg/grab"
)

// grabFlags is the reading surface shared by every mode. Numeric and
// tri-state values stay strings until build runs, so validation can
// report the messages this surface has always used instead of pflag's.
type grabFlags struct {
	count   string
	timeout string
	valid   string
	exclude string
	deflt   string
	mask    string

	both     bool
	toStderr bool
	flush    bool
	retKey   bool
	silent   bool
	upper    bool
	lower    bool

	edit      string
	newline   string
	highlight string
}

// register attaches every reading flag to fs.
func (f *grabFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.count, "count", "n", "1", "number of characters to read")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "timeout after this many seconds")
	fs.StringVarP(&f.valid, "valid", "c", "", "only these characters are returned")
	fs.StringVarP(&f.exclude, "exclude", "C", "", "exclude these characters from input")
	fs.StringVarP(&f.deflt, "default", "d", "", "default char or string to return")
	fs.StringVarP(&f.mask, "mask", "m", "", "mask for positional input (U=upper l=lower c=alpha n=digit x=hex p=punct .=any)")

	fs.BoolVarP(&f.both, "both", "b", false, "output to stdout and stderr")
	fs.BoolVarP(&f.toStderr, "stderr", "e", false, "output to stderr instead of stdout")
	fs.BoolVarP(&f.flush, "flush", "f", false, "flush any previous input before reading")
	fs.BoolVarP(&f.retKey, "return", "r", false, "RETURN key exits (use with -n)")
	fs.BoolVarP(&f.silent, "silent", "s", false, "silent, just return status")

	fs.VarP(&caseValue{set: &f.upper, clear: &f.lower}, "upper", "U", "upper case mapping on input")
	fs.VarP(&caseValue{set: &f.lower, clear: &f.upper}, "lower", "L", "lower case mapping on input")
	fs.Lookup("upper").NoOptDefVal = "true"
	fs.Lookup("lower").NoOptDefVal = "true"

	fs.StringVarP(&f.edit, "edit", "E", "", "enable (1) or disable (0) line editing")
	fs.Lookup("edit").NoOptDefVal = "1"
	fs.StringVarP(&f.newline, "newline", "Z", "", "trailing newline to stderr (default: on)")
	fs.Lookup("newline").NoOptDefVal = "1"
	fs.StringVarP(&f.highlight, "highlight", "H", "", "highlight style: r(everse), b(racket) or a(rrow)")
	fs.Lookup("highlight").NoOptDefVal = "r"

	fs.VarP(&promptValue{w: os.Stdout}, "prompt", "p", "prompt to help user")
	fs.VarP(&promptValue{w: os.Stderr}, "err-prompt", "q", "prompt to help user (through stderr)")
}

// caseValue folds -U and -L into one setting where the last flag given
// wins, which a pair of independent bools cannot express.
type caseValue struct {
	set, clear *bool
}

func (c *caseValue) Set(string) error {
	*c.set = true
	*c.clear = false
	return nil
}

func (c *caseValue) Type() string { return "bool" }

func (c *caseValue) String() string { return strconv.FormatBool(*c.set) }

// promptValue prints its argument the moment pflag parses it, so
// prompts appear in command-line order, before reading starts.
type promptValue struct {
	w io.Writer
}

func (p *promptValue) Set(s string) error {
	_, err := fmt.Fprint(p.w, s)
	return err
}

func (p *promptValue) Type() string { return "string" }

func (p *promptValue) String() string { return "" }

// normalizeArgs rewrites the shorthands whose argument is whatever is
// left of their cluster (-E, -Z, -H) into long form, which pflag can
// parse. Long flags, positionals and everything after "--" pass
// through untouched.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			out = append(out, arg)
			continue
		}
		pieces, barePrompt := splitCluster(arg)
		out = append(out, pieces...)
		if barePrompt && i == len(args)-1 {
			// A prompt flag that runs out of arguments prints
			// nothing rather than failing.
			out = append(out, "")
		}
	}
	return out
}

// splitCluster walks one shorthand cluster. The value flags end the
// walk with the remainder attached for pflag to split off; E, Z and H
// interpret the remainder themselves and are rewritten to long form
// here. The boolean reports a trailing prompt flag with no argument.
func splitCluster(arg string) ([]string, bool) {
	body := arg[1:]
	for j := 0; j < len(body); j++ {
		switch body[j] {
		case 'p', 'q':
			return []string{arg}, j == len(body)-1
		case 'c', 'C', 'd', 'm', 'n', 't':
			return []string{arg}, false
		case 'E':
			return joinBools(body[:j], "--edit="+onOff(body[j+1:])), false
		case 'Z':
			return joinBools(body[:j], "--newline="+onOff(body[j+1:])), false
		case 'H':
			return joinBools(body[:j], "--highlight="+styleArg(body[j+1:])), false
		}
	}
	return []string{arg}, false
}

func joinBools(bools, long string) []string {
	if bools == "" {
		return []string{long}
	}
	return []string{"-" + bools, long}
}

// onOff reads the setting attached to -E or -Z: a leading zero turns
// the feature off, anything else, including nothing, turns it on.
func onOff(rest string) string {
	if strings.HasPrefix(rest, "0") {
		return "0"
	}
	return "1"
}

func styleArg(rest string) string {
	if rest == "" {
		return "r"
	}
	return rest
}

// optargMessages restores the wording this surface reports when a value
// flag reaches the end of the command line with nothing left to take.
var optargMessages = map[string]string{
	"'n' in -n": "-n option: need a number",
	"'t' in -t": "-t option: need a number",
	"'c' in -c": "-c option: must have at least one valid character",
	"'C' in -C": "-C option: must have at least one character to exclude",
	"'d' in -d": "-d option: must have at least one character for default",
	"'m' in -m": "-m option: must provide a mask string",
	"--file":    "select: --file requires a filename",
}

func translateFlagError(err error) error {
	rest := strings.TrimPrefix(err.Error(), "flag needs an argument: ")
	if rest == err.Error() {
		return err
	}
	if msg, ok := optargMessages[rest]; ok {
		return errors.New(msg)
	}
	return err
}

// charPattern anchors a -c or -C argument as a single-character
// pattern. A bracket expression is taken as written; anything else is
// a plain set of characters.
func charPattern(val string) string {
	if strings.HasPrefix(val, "[") && strings.HasSuffix(val, "]") {
		return "^" + val + "$"
	}
	return "^[" + val + "]$"
}

// parseStyle maps the -H letter to a highlight style. Only the first
// character is examined, so the long words work too.
func parseStyle(h string) (grab.HighlightStyle, error) {
	switch {
	case h == "" || h[0] == 'r':
		return grab.HighlightReverse, nil
	case h[0] == 'b':
		return grab.HighlightBracket, nil
	case h[0] == 'a':
		return grab.HighlightArrow, nil
	}
	return 0, fmt.Errorf("-H option: unrecognized style '%c' (use r, b, or a)", h[0])
}

// build validates the parsed surface and produces the option set a
// session runs with. fs must be the full flag set of the command being
// run so flags inherited by the select subcommands are visible.
func (f *grabFlags) build(fs *pflag.FlagSet, cfg *Config) (*grab.Options, error) {
	count, err := strconv.Atoi(f.count)
	if err != nil {
		count = 0
	}
	if count <= 0 {
		return nil, errors.New("-n option: number of characters to read must be greater than zero")
	}

	opts := &grab.Options{
		Count:    count,
		Default:  f.deflt,
		RetKey:   f.retKey,
		Silent:   f.silent,
		Flush:    f.flush,
		Upper:    f.upper,
		Lower:    f.lower,
		ToStderr: f.toStderr,
		Both:     f.both,
	}

	if f.timeout != "" {
		secs, err := strconv.Atoi(f.timeout)
		if err != nil {
			secs = 0
		}
		if secs <= 0 {
			return nil, errors.New("-t option: number of seconds to timeout must be greater than zero")
		}
		opts.Timeout = time.Duration(secs) * time.Second
	}

	if fs.Changed("valid") {
		if f.valid == "" {
			return nil, errors.New("-c option: must have at least one valid character")
		}
		re, err := regexp.Compile(charPattern(f.valid))
		if err != nil {
			return nil, fmt.Errorf("-c option: %v", err)
		}
		opts.Include = re
	}
	if fs.Changed("exclude") {
		if f.exclude == "" {
			return nil, errors.New("-C option: must have at least one character to exclude")
		}
		re, err := regexp.Compile(charPattern(f.exclude))
		if err != nil {
			return nil, fmt.Errorf("-C option: %v", err)
		}
		opts.Exclude = re
	}
	if fs.Changed("default") && f.deflt == "" {
		return nil, errors.New("-d option: must have at least one character for default")
	}
	if fs.Changed("mask") && f.mask == "" {
		return nil, errors.New("-m option: must provide a mask string")
	}

	switch {
	case f.edit == "":
		opts.Erase = grab.EraseAuto
	case strings.HasPrefix(f.edit, "0"):
		opts.Erase = grab.EraseOff
	default:
		opts.Erase = grab.EraseOn
	}

	switch {
	case f.newline != "":
		opts.TrailingNewline = !strings.HasPrefix(f.newline, "0")
	case cfg != nil && cfg.Newline != nil:
		opts.TrailingNewline = *cfg.Newline
	default:
		opts.TrailingNewline = true
	}

	style := f.highlight
	if style == "" && cfg != nil {
		style = cfg.Highlight
	}
	if opts.Highlight, err = parseStyle(style); err != nil {
		return nil, err
	}

	return opts, nil
}
