package utils

import "strings"

// NormalizeInput lowercases keystrokes and strips surrounding whitespace.
// Interior spaces are kept since they may be delimiters.
func NormalizeInput(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidInput reports whether s consists only of ASCII letters and the given
// delimiters, and does not start with a delimiter.
func IsValidInput(s, delimiters string) bool {
	if len(s) == 0 {
		return false
	}
	if strings.IndexByte(delimiters, s[0]) >= 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		if strings.IndexByte(delimiters, c) >= 0 {
			continue
		}
		return false
	}
	return true
}
