package match

import "strings"

// Opinion markers taken from the content-processing heuristics: inputs that
// announce themselves as subjective are not checkable claims.
var opinionMarkers = []string{
	"i think",
	"i believe",
	"i feel",
	"in my opinion",
	"seems like",
	"imho",
}

// IsOpinion reports whether the raw input reads as an opinion or a question
// rather than a factual claim. Such inputs resolve to UNVERIFIABLE before
// any matching tier runs.
func IsOpinion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range opinionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
