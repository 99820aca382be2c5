package match

import (
	"testing"

	"github.com/ppiankov/verity/internal/model"
)

func testClaims() []model.Claim {
	return []model.Claim{
		{
			ID:         "flat-earth",
			Text:       "the earth is flat",
			Verdict:    model.VerdictFalse,
			Confidence: 99,
		},
		{
			ID:         "water-boils",
			Text:       "water boils at 100 degrees celsius",
			Verdict:    model.VerdictTrue,
			Confidence: 95,
		},
		{
			ID:         "vaccines-autism",
			Text:       "vaccines cause autism",
			Verdict:    model.VerdictFalse,
			Confidence: 98,
		},
	}
}

func TestLexicalMatch_Exact(t *testing.T) {
	m := NewLexicalMatcher(0.9)

	result := m.Match("the earth is flat", testClaims())
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Tier != model.TierExact {
		t.Errorf("tier = %s, want %s", result.Tier, model.TierExact)
	}
	if result.Claim.ID != "flat-earth" {
		t.Errorf("matched %s, want flat-earth", result.Claim.ID)
	}
	if result.Confidence != 99 {
		t.Errorf("confidence = %v, want 99 (passthrough)", result.Confidence)
	}
	if result.Similarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0", result.Similarity)
	}
}

func TestLexicalMatch_FuzzyContainment(t *testing.T) {
	m := NewLexicalMatcher(0.9)

	// Input that fully contains a known claim still scores 1.0
	result := m.Match("they say vaccines cause autism in children", testClaims())
	if result == nil {
		t.Fatal("expected a fuzzy match")
	}
	if result.Tier != model.TierFuzzy {
		t.Errorf("tier = %s, want %s", result.Tier, model.TierFuzzy)
	}
	if result.Claim.ID != "vaccines-autism" {
		t.Errorf("matched %s, want vaccines-autism", result.Claim.ID)
	}
	if result.Confidence != 98 {
		t.Errorf("confidence = %v, want 98 (passthrough)", result.Confidence)
	}
}

func TestLexicalMatch_Miss(t *testing.T) {
	m := NewLexicalMatcher(0.9)

	result := m.Match("the moon is made of cheese", testClaims())
	if result != nil {
		t.Errorf("expected no match, got %s", result.Claim.ID)
	}
}

func TestLexicalMatch_ThresholdStrict(t *testing.T) {
	m := NewLexicalMatcher(0.9)

	// Only 3 of 6 claim tokens present: below the fuzzy threshold
	result := m.Match("water boils here", testClaims())
	if result != nil {
		t.Errorf("expected no match below threshold, got %s", result.Claim.ID)
	}
}

func TestLexicalMatch_EmptyCorpus(t *testing.T) {
	m := NewLexicalMatcher(0.9)

	if result := m.Match("the earth is flat", nil); result != nil {
		t.Error("expected no match against empty corpus")
	}
}

func TestOverlapSimilarity(t *testing.T) {
	tests := []struct {
		name  string
		claim string
		input string
		want  float64
	}{
		{"identical", "a b c", "a b c", 1.0},
		{"containment", "a b c", "x a b c y", 1.0},
		{"partial", "a b c d", "a b", 0.5},
		{"disjoint", "a b", "x y", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlapSimilarity(Tokens(tt.claim), Tokens(tt.input))
			if got != tt.want {
				t.Errorf("overlapSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
