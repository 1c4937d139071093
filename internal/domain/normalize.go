package domain

import "strings"

// NormalizeText prepares a lookup term for the API and the history table:
// surrounding whitespace is trimmed, runs of inner whitespace collapse to a
// single space and the result is lowercased.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}
