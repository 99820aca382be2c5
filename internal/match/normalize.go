package match

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes claim text for matching: lowercase, punctuation
// stripped, internal whitespace collapsed. The corpus stores text in this
// form, and every input is normalized the same way before any tier runs.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true // Collapse leading whitespace too
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// Punctuation and symbols are dropped; they never carry
			// claim identity
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokens splits normalized text into its word set
func Tokens(normalizedText string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalizedText) {
		set[tok] = struct{}{}
	}
	return set
}
