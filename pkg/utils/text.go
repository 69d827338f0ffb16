// Package utils provides shared utilities for text, math, and logging.
package utils

import "strings"

// Truncate returns s truncated to maxLen runes, with "..." appended if
// truncated. Cutting by rune keeps multi-byte characters intact.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// CollapseWhitespace replaces every run of whitespace (including newlines and
// tabs) with a single space and trims leading/trailing space. Keeps citation
// snippets on one line.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
