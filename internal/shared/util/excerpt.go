package util

import "strings"

// Excerpt returns at most limit runes of s, collapsed to a single line, for
// embedding raw model output in diagnostics.
func Excerpt(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
