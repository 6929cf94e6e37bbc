package event

import "strings"

// Initials derives a two-letter avatar label from a display name or email:
// the first letters of the first two space-separated tokens when there are
// at least two, otherwise the first two characters, uppercased. Empty input
// yields the "??" placeholder.
func Initials(nameOrEmail string) string {
	s := strings.TrimSpace(nameOrEmail)
	if s == "" {
		return "??"
	}
	parts := strings.Fields(s)
	if len(parts) >= 2 {
		return strings.ToUpper(string([]rune(parts[0])[0]) + string([]rune(parts[1])[0]))
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return strings.ToUpper(string(runes))
	}
	return strings.ToUpper(string(runes[:2]))
}
