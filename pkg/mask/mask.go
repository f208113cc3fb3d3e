// Package mask implements positional input: a compiled mask describes,
// cell by cell, which characters a field accepts, literal separators are
// inserted for the user rather than typed, and quantifiers allow
// variable-width runs. An automaton tracks how the typed characters map
// onto the mask as the field is filled and corrected.
package mask

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dshills/grabchars/internal/ascii"
)

// Class is the kind of character a mask element accepts.
type Class uint8

const (
	ClassUpper   Class = iota // U: uppercase letter
	ClassLower                // l: lowercase letter
	ClassAlpha                // c: any letter
	ClassDigit                // n: decimal digit
	ClassHex                  // x: hex digit
	ClassPunct                // p: punctuation
	ClassSpace                // W: whitespace
	ClassAny                  // .: any character
	ClassCustom               // [...]: bracket character class
	ClassLiteral              // anything else: auto-inserted separator
)

// Quantifier says how many characters an element consumes.
type Quantifier uint8

const (
	QuantOne  Quantifier = iota // exactly one
	QuantStar                   // *: zero or more
	QuantPlus                   // +: one or more
	QuantOpt                    // ?: zero or one
)

// min returns the fewest characters the quantifier requires.
func (q Quantifier) min() int {
	if q == QuantOne || q == QuantPlus {
		return 1
	}
	return 0
}

// unbounded reports whether the quantifier has no upper limit.
func (q Quantifier) unbounded() bool {
	return q == QuantStar || q == QuantPlus
}

// Element is one compiled mask cell.
type Element struct {
	Class  Class
	Quant  Quantifier
	Lit    byte           // set for ClassLiteral
	Custom *regexp.Regexp // set for ClassCustom
}

// Matches reports whether the element accepts ch.
func (e Element) Matches(ch byte) bool {
	switch e.Class {
	case ClassUpper:
		return ascii.IsUpper(ch)
	case ClassLower:
		return ascii.IsLower(ch)
	case ClassAlpha:
		return ascii.IsAlpha(ch)
	case ClassDigit:
		return ascii.IsDigit(ch)
	case ClassHex:
		return ascii.IsHexDigit(ch)
	case ClassPunct:
		return ascii.IsPunct(ch)
	case ClassSpace:
		return ascii.IsSpace(ch)
	case ClassAny:
		return true
	case ClassCustom:
		return e.Custom.MatchString(string(rune(ch)))
	case ClassLiteral:
		return ch == e.Lit
	}
	return false
}

// Compile parses a mask string into elements. A backslash escapes the
// next character into a literal, a bracket expression becomes a custom
// class, the class letters map to their classes, and any other character
// is a literal separator. A trailing *, + or ? attaches to the element
// before it; quantifiers cannot start the mask, follow another
// quantifier, or attach to a literal.
func Compile(s string) ([]Element, error) {
	var elements []Element
	i := 0
	for i < len(s) {
		ch := s[i]
		if ch == '*' || ch == '+' || ch == '?' {
			return nil, fmt.Errorf("unexpected quantifier %q at position %d in mask", ch, i)
		}

		var isLiteral bool
		switch {
		case ch == '\\':
			i++
			if i < len(s) {
				elements = append(elements, Element{Class: ClassLiteral, Lit: s[i]})
			}
			isLiteral = true
		case ch == '[':
			start := i
			i++
			// A leading ^ or ] belongs to the class body, not the close.
			if i < len(s) && (s[i] == '^' || s[i] == ']') {
				i++
			}
			for i < len(s) && s[i] != ']' {
				i++
			}
			if i >= len(s) {
				return nil, errors.New("unclosed '[' in mask")
			}
			expr := s[start : i+1]
			re, err := regexp.Compile("^" + expr + "$")
			if err != nil {
				return nil, fmt.Errorf("invalid character class '%s': %w", expr, err)
			}
			elements = append(elements, Element{Class: ClassCustom, Custom: re})
		default:
			elem := Element{Quant: QuantOne}
			switch ch {
			case 'U':
				elem.Class = ClassUpper
			case 'l':
				elem.Class = ClassLower
			case 'c':
				elem.Class = ClassAlpha
			case 'n':
				elem.Class = ClassDigit
			case 'x':
				elem.Class = ClassHex
			case 'p':
				elem.Class = ClassPunct
			case 'W':
				elem.Class = ClassSpace
			case '.':
				elem.Class = ClassAny
			default:
				elem.Class = ClassLiteral
				elem.Lit = ch
				isLiteral = true
			}
			elements = append(elements, elem)
		}

		i++
		if i < len(s) && (s[i] == '*' || s[i] == '+' || s[i] == '?') {
			if isLiteral {
				return nil, fmt.Errorf("quantifier %q cannot be applied to a literal character", s[i])
			}
			switch s[i] {
			case '*':
				elements[len(elements)-1].Quant = QuantStar
			case '+':
				elements[len(elements)-1].Quant = QuantPlus
			case '?':
				elements[len(elements)-1].Quant = QuantOpt
			}
			i++
		}
	}
	return elements, nil
}
