package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/verity/internal/model"
)

// Embedder converts text into a fixed-length vector. Implementations must be
// deterministic for a given input: the same text embedded at corpus-load time
// and at query time has to produce the same vector.
type Embedder interface {
	// Name returns the provider name
	Name() string

	// Embed returns the embedding vector for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, in order
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NewEmbedder creates an embedding provider based on configuration.
// An empty provider name returns (nil, nil): embeddings disabled, the
// semantic matcher falls back to lexical similarity.
func NewEmbedder(config model.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIEmbedder(config)

	case "ollama":
		return NewOllamaEmbedder(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// Normalize scales a vector to unit length so that cosine similarity
// reduces to a dot product. Zero vectors are returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(1.0 / math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x * norm
	}
	return out
}
