// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"strings"
	"unicode/utf8"
)

// KeyValue splits s at the first occurrence of any of delimiters, or of
// ':' when none are given. ok is false when no delimiter occurs.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	seps := ":"
	if len(delimiters) > 0 {
		seps = string(delimiters)
	}

	i := strings.IndexAny(s, seps)
	if i < 0 {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[:i], s[i+size:], true
}
