// Package ascii provides byte-oriented character classification and case
// mapping. Input arrives one byte at a time and the matching rules are
// defined over ASCII; bytes above 0x7F never match a class and case-map to
// themselves.
package ascii

// IsUpper reports whether b is an ASCII uppercase letter.
func IsUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// IsLower reports whether b is an ASCII lowercase letter.
func IsLower(b byte) bool { return b >= 'a' && b <= 'z' }

// IsAlpha reports whether b is an ASCII letter.
func IsAlpha(b byte) bool { return IsUpper(b) || IsLower(b) }

// IsDigit reports whether b is a decimal digit.
func IsDigit(b byte) bool { return b >= '0' && b <= '9' }

// IsHexDigit reports whether b is a hexadecimal digit.
func IsHexDigit(b byte) bool {
	return IsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// IsPunct reports whether b is an ASCII punctuation character: a graphic
// character that is neither a letter, a digit, nor a space.
func IsPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}

// IsSpace reports whether b is ASCII whitespace: space, tab, newline,
// form feed, or carriage return. Vertical tab does not count.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// ToUpper maps an ASCII lowercase letter to uppercase; other bytes pass
// through unchanged.
func ToUpper(b byte) byte {
	if IsLower(b) {
		return b - ('a' - 'A')
	}
	return b
}

// ToLower maps an ASCII uppercase letter to lowercase; other bytes pass
// through unchanged.
func ToLower(b byte) byte {
	if IsUpper(b) {
		return b + ('a' - 'A')
	}
	return b
}

// MapCase applies at most one of the upper/lower mappings to b. When both
// are requested upper wins, mirroring how the flag parser resolves -U/-L.
func MapCase(b byte, upper, lower bool) byte {
	switch {
	case upper:
		return ToUpper(b)
	case lower:
		return ToLower(b)
	}
	return b
}
