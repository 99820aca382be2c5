package corpus

import (
	_ "embed"
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/verity/internal/embedding"
	"github.com/ppiankov/verity/internal/match"
	"github.com/ppiankov/verity/internal/model"
)

//go:embed seed.yaml
var seedData []byte

// Corpus is the immutable in-memory table of known claims. It is loaded once
// at startup and read concurrently without synchronization afterwards.
type Corpus struct {
	claims []model.Claim
	logger *slog.Logger
}

type claimsFile struct {
	Claims []model.Claim `yaml:"claims"`
}

// Load reads a claims file from path, or the embedded seed corpus when path
// is empty. Claim texts are normalized and validated; embeddings are not
// computed here (see ComputeEmbeddings).
func Load(path string) (*Corpus, error) {
	data := seedData
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read corpus file: %w", err)
		}
		data = fileData
	}

	var file claimsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	if len(file.Claims) == 0 {
		return nil, fmt.Errorf("corpus contains no claims")
	}

	for i := range file.Claims {
		c := &file.Claims[i]
		c.Text = match.Normalize(c.Text)
		if c.Text == "" {
			return nil, fmt.Errorf("corpus claim %q has empty text", c.ID)
		}
		c.Verdict = model.ParseVerdict(string(c.Verdict))
		if c.Confidence < 0 || c.Confidence > 100 {
			return nil, fmt.Errorf("corpus claim %q has confidence %v outside [0,100]", c.ID, c.Confidence)
		}
	}

	return &Corpus{
		claims: file.Claims,
		logger: slog.Default().With("component", "corpus"),
	}, nil
}

// ComputeEmbeddings embeds every claim text once, up front, so no query is
// served against a partially embedded corpus. A nil embedder or a backend
// failure leaves the corpus without vectors; the semantic tier then runs in
// its lexical fallback mode.
func (c *Corpus) ComputeEmbeddings(ctx context.Context, embedder embedding.Embedder) error {
	if embedder == nil {
		return nil
	}

	texts := make([]string, len(c.claims))
	for i := range c.claims {
		texts[i] = c.claims[i].Text
	}

	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(c.claims) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(c.claims), len(vectors))
	}

	for i := range c.claims {
		c.claims[i].Embedding = embedding.Normalize(vectors[i])
	}

	c.logger.Info("corpus embeddings computed", "claims", len(c.claims), "provider", embedder.Name())
	return nil
}

// Claims returns the corpus entries. Callers must treat the slice as
// read-only; it is shared across all in-flight requests.
func (c *Corpus) Claims() []model.Claim {
	return c.claims
}

// Len returns the number of claims in the corpus
func (c *Corpus) Len() int {
	return len(c.claims)
}

// Stats returns per-verdict claim counts
func (c *Corpus) Stats() map[model.Verdict]int {
	stats := make(map[model.Verdict]int)
	for i := range c.claims {
		stats[c.claims[i].Verdict]++
	}
	return stats
}

// HasEmbeddings reports whether every claim carries a vector
func (c *Corpus) HasEmbeddings() bool {
	for i := range c.claims {
		if len(c.claims[i].Embedding) == 0 {
			return false
		}
	}
	return len(c.claims) > 0
}
