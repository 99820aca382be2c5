package match

import (
	"context"
	"log/slog"

	"github.com/ppiankov/verity/internal/embedding"
	"github.com/ppiankov/verity/internal/model"
)

// SemanticMatcher finds the nearest corpus entry by embedding similarity.
// It is the last local tier: the most expensive and the least precise, so it
// only runs after the lexical tiers miss.
type SemanticMatcher struct {
	embedder  embedding.Embedder // nil means lexical fallback only
	threshold float64
	logger    *slog.Logger
}

// NewSemanticMatcher creates a semantic matcher. A nil embedder is valid:
// the matcher then uses Jaccard token-set similarity with the same threshold
// semantics, trading accuracy for availability.
func NewSemanticMatcher(embedder embedding.Embedder, threshold float64) *SemanticMatcher {
	if threshold <= 0 {
		threshold = 0.65
	}
	return &SemanticMatcher{
		embedder:  embedder,
		threshold: threshold,
		logger:    slog.Default().With("component", "semantic-matcher"),
	}
}

// Match embeds the input and returns the best corpus entry above the
// similarity threshold, with confidence discounted linearly by similarity:
// a weaker paraphrase yields a weaker confidence than the canonical claim.
// Embedding failures degrade to lexical similarity, never to an error.
func (m *SemanticMatcher) Match(ctx context.Context, normalizedText string, claims []model.Claim) *Result {
	if m.embedder == nil {
		return m.matchLexical(normalizedText, claims)
	}

	queryVec, err := m.embedder.Embed(ctx, normalizedText)
	if err != nil {
		m.logger.Warn("embedding backend unavailable, falling back to lexical similarity", "err", err)
		return m.matchLexical(normalizedText, claims)
	}
	queryVec = embedding.Normalize(queryVec)

	var best *Result
	for i := range claims {
		if len(claims[i].Embedding) == 0 {
			continue
		}
		sim := float64(dotProduct(queryVec, claims[i].Embedding))
		if sim < m.threshold {
			continue
		}
		if best == nil || sim > best.Similarity {
			best = &Result{
				Claim:      &claims[i],
				Tier:       model.TierSemantic,
				Similarity: sim,
				Confidence: sim * claims[i].Confidence,
			}
		}
	}

	return best
}

// matchLexical is the degraded mode: Jaccard over token sets, same threshold
func (m *SemanticMatcher) matchLexical(normalizedText string, claims []model.Claim) *Result {
	inputTokens := Tokens(normalizedText)

	var best *Result
	for i := range claims {
		sim := jaccardSimilarity(Tokens(claims[i].Text), inputTokens)
		if sim < m.threshold {
			continue
		}
		if best == nil || sim > best.Similarity {
			best = &Result{
				Claim:      &claims[i],
				Tier:       model.TierSemantic,
				Similarity: sim,
				Confidence: sim * claims[i].Confidence,
			}
		}
	}

	return best
}

// dotProduct computes cosine similarity for unit-length vectors
func dotProduct(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
