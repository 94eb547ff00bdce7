package internal

import (
	"errors"
	"strconv"
)

var (
	errNotInteger   = errors.New("not an integer literal")
	errIntegerRange = errors.New("integer out of 64-bit range")
)

// IsValidJSONNumber validates if a string represents a valid JSON number format
// according to RFC 8259. Supports integers, decimals, and scientific notation.
func IsValidJSONNumber(s string) bool {
	if len(s) == 0 {
		return false
	}

	i := 0
	if s[0] == '-' {
		i = 1
		if i >= len(s) {
			return false
		}
	}

	// Integer part
	if s[i] == '0' {
		i++
	} else if s[i] >= '1' && s[i] <= '9' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	} else {
		return false
	}

	// Optional fractional part
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	// Optional exponent part
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	return i == len(s)
}

// ParseInteger reads decimal integer text the way the parser would: negative
// values become sint, everything else uint. It rejects fractions, exponents
// and values outside the 64-bit ranges.
func ParseInteger(s string) (Subtype, uint64, error) {
	if !IsValidJSONNumber(s) {
		return SubNone, 0, errNotInteger
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '.' || c == 'e' || c == 'E' {
			return SubNone, 0, errNotInteger
		}
	}
	if s[0] == '-' {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return SubNone, 0, errIntegerRange
		}
		if n == 0 {
			return SubUint, 0, nil
		}
		return SubSint, uint64(n), nil
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return SubNone, 0, errIntegerRange
	}
	return SubUint, u, nil
}

// FormatInteger renders an integer node as decimal text.
func FormatInteger(n Node) string {
	if n.Subtype() == SubSint {
		return strconv.FormatInt(n.Sint(), 10)
	}
	return strconv.FormatUint(n.Uint(), 10)
}
