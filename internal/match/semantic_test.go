package match

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ppiankov/verity/internal/model"
)

// fakeEmbedder returns canned vectors per input text
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return []float32{0, 0, 1}, nil
	}
	return vec, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) IsAvailable(ctx context.Context) bool { return f.err == nil }

func embeddedClaims() []model.Claim {
	claims := testClaims()
	claims[0].Embedding = []float32{1, 0, 0}
	claims[1].Embedding = []float32{0, 1, 0}
	claims[2].Embedding = []float32{0, 0, 1}
	return claims
}

func TestSemanticMatch_Hit(t *testing.T) {
	// cos 30°: similar but not identical to the flat-earth vector
	sim := float32(math.Cos(math.Pi / 6))
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"our planet is a flat disc": {sim, float32(math.Sin(math.Pi / 6)), 0},
	}}

	m := NewSemanticMatcher(embedder, 0.65)
	result := m.Match(context.Background(), "our planet is a flat disc", embeddedClaims())

	if result == nil {
		t.Fatal("expected a semantic match")
	}
	if result.Tier != model.TierSemantic {
		t.Errorf("tier = %s, want %s", result.Tier, model.TierSemantic)
	}
	if result.Claim.ID != "flat-earth" {
		t.Errorf("matched %s, want flat-earth", result.Claim.ID)
	}

	// Confidence is discounted linearly by similarity
	wantConfidence := float64(sim) * 99
	if math.Abs(result.Confidence-wantConfidence) > 0.5 {
		t.Errorf("confidence = %v, want ~%v", result.Confidence, wantConfidence)
	}
}

func TestSemanticMatch_BelowThreshold(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"unrelated": {0.3, 0.3, 0.3},
	}}

	m := NewSemanticMatcher(embedder, 0.65)
	if result := m.Match(context.Background(), "unrelated", embeddedClaims()); result != nil {
		t.Errorf("expected no match below threshold, got %s", result.Claim.ID)
	}
}

func TestSemanticMatch_EmbedderErrorFallsBack(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("backend down")}

	m := NewSemanticMatcher(embedder, 0.65)

	// Jaccard fallback: high token overlap with the boiling-point claim
	result := m.Match(context.Background(), "water boils at 100 degrees celsius", embeddedClaims())
	if result == nil {
		t.Fatal("expected a lexical-fallback match")
	}
	if result.Claim.ID != "water-boils" {
		t.Errorf("matched %s, want water-boils", result.Claim.ID)
	}
	if result.Tier != model.TierSemantic {
		t.Errorf("tier = %s, want %s", result.Tier, model.TierSemantic)
	}
}

func TestSemanticMatch_NilEmbedder(t *testing.T) {
	m := NewSemanticMatcher(nil, 0.65)

	result := m.Match(context.Background(), "the earth is flat", embeddedClaims())
	if result == nil {
		t.Fatal("expected a jaccard match with nil embedder")
	}
	if result.Claim.ID != "flat-earth" {
		t.Errorf("matched %s, want flat-earth", result.Claim.ID)
	}
}

func TestSemanticMatch_SkipsClaimsWithoutEmbeddings(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"anything": {1, 0, 0},
	}}

	claims := testClaims() // no embeddings set
	m := NewSemanticMatcher(embedder, 0.65)
	if result := m.Match(context.Background(), "anything", claims); result != nil {
		t.Errorf("expected no match against unembedded corpus, got %s", result.Claim.ID)
	}
}

func TestDotProduct(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	if got := dotProduct(a, a); got != 1 {
		t.Errorf("dotProduct(a, a) = %v, want 1", got)
	}
	if got := dotProduct(a, b); got != 0 {
		t.Errorf("dotProduct(a, b) = %v, want 0", got)
	}
	// Mismatched lengths use the shorter vector
	if got := dotProduct([]float32{1, 1}, []float32{1}); got != 1 {
		t.Errorf("dotProduct short = %v, want 1", got)
	}
}
