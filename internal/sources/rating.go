package sources

import (
	"strings"

	"github.com/ppiankov/verity/internal/model"
)

// Rating is a standardized claim rating across the different source APIs.
// Each source speaks its own dialect ("Pants on Fire!", "Four Pinocchios");
// NormalizeRating maps them onto this shared scale.
type Rating string

const (
	RatingTrue         Rating = "TRUE"
	RatingMostlyTrue   Rating = "MOSTLY_TRUE"
	RatingMixed        Rating = "MIXED"
	RatingMostlyFalse  Rating = "MOSTLY_FALSE"
	RatingFalse        Rating = "FALSE"
	RatingUnverifiable Rating = "UNVERIFIABLE"
	RatingUncertain    Rating = "UNCERTAIN"
)

// NormalizeRating maps a source-native textual rating onto the shared scale
func NormalizeRating(raw string) Rating {
	lower := strings.ToLower(strings.TrimSpace(raw))

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	// Mixed indicators win over polarity words: "Half True" is a mixed
	// rating, not a true one.
	if containsAny("mixed", "mixture", "half", "partly", "misleading") {
		return RatingMixed
	}

	if containsAny("unverifiable", "unverified", "unproven", "inconclusive") {
		return RatingUnverifiable
	}

	// False-family words before true-family: "incorrect" contains
	// "correct" and "inaccurate" contains "accurate".
	if containsAny("false", "incorrect", "inaccurate", "debunked", "pants on fire") {
		if containsAny("mostly", "partially", "somewhat") {
			return RatingMostlyFalse
		}
		return RatingFalse
	}

	if containsAny("true", "correct", "accurate", "verified") {
		if containsAny("mostly", "partially", "somewhat") {
			return RatingMostlyTrue
		}
		return RatingTrue
	}

	return RatingUncertain
}

// Verdict maps a rating onto the verdict scale used by the engine.
// MOSTLY_FALSE lands on MISLEADING rather than FALSE: a claim most
// fact-checkers call "mostly false" usually contains a kernel of truth.
func (r Rating) Verdict() model.Verdict {
	switch r {
	case RatingTrue, RatingMostlyTrue:
		return model.VerdictTrue
	case RatingMixed, RatingMostlyFalse:
		return model.VerdictMisleading
	case RatingFalse:
		return model.VerdictFalse
	case RatingUnverifiable:
		return model.VerdictUnverifiable
	default:
		return model.VerdictUncertain
	}
}
