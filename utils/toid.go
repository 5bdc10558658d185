package utils

import "strings"

// ToID normalizes a name to the canonical identifier form used for all
// registry lookups: lowercase with everything but letters and digits removed.
func ToID(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
