package match

import (
	"github.com/ppiankov/verity/internal/model"
)

// Result is a corpus hit produced by one of the matcher tiers
type Result struct {
	Claim      *model.Claim
	Tier       model.Tier
	Similarity float64 // 1.0 for exact hits
	Confidence float64 // Confidence to report for this hit (0-100)
}

// LexicalMatcher performs the exact and fuzzy tiers against the corpus
type LexicalMatcher struct {
	fuzzyThreshold float64
}

// NewLexicalMatcher creates a lexical matcher. The fuzzy threshold is strict
// on purpose: it exists for typos and capitalization variants, not paraphrases.
func NewLexicalMatcher(fuzzyThreshold float64) *LexicalMatcher {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = 0.9
	}
	return &LexicalMatcher{fuzzyThreshold: fuzzyThreshold}
}

// Match runs the exact tier, then the fuzzy tier. The input must already be
// normalized. Returns nil when neither tier produces a hit.
func (m *LexicalMatcher) Match(normalizedText string, claims []model.Claim) *Result {
	// Exact tier: direct equality scan. The corpus is small enough that a
	// linear pass beats maintaining an index.
	for i := range claims {
		if claims[i].Text == normalizedText {
			return &Result{
				Claim:      &claims[i],
				Tier:       model.TierExact,
				Similarity: 1.0,
				Confidence: claims[i].Confidence,
			}
		}
	}

	// Fuzzy tier: token overlap against each corpus entry, best match wins
	// if it clears the threshold. Confidence passes through unchanged since
	// the threshold only admits near-identical variants.
	inputTokens := Tokens(normalizedText)
	var best *Result
	for i := range claims {
		sim := overlapSimilarity(Tokens(claims[i].Text), inputTokens)
		if sim < m.fuzzyThreshold {
			continue
		}
		if best == nil || sim > best.Similarity {
			best = &Result{
				Claim:      &claims[i],
				Tier:       model.TierFuzzy,
				Similarity: sim,
				Confidence: claims[i].Confidence,
			}
		}
	}

	return best
}

// overlapSimilarity measures how much of the corpus entry's token set is
// present in the input. An input that fully contains a known claim scores 1.0
// regardless of surrounding words.
func overlapSimilarity(claimTokens, inputTokens map[string]struct{}) float64 {
	if len(claimTokens) == 0 {
		return 0
	}
	shared := 0
	for tok := range claimTokens {
		if _, ok := inputTokens[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(claimTokens))
}

// jaccardSimilarity measures token-set overlap symmetrically. Used as the
// semantic tier's degraded mode when no embedding backend is reachable.
func jaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
