package embedding

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/verity/internal/model"
)

// OpenAIEmbedder implements the Embedder interface using OpenAI's
// embeddings API (or any OpenAI-compatible endpoint via BaseURL)
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	config model.EmbeddingConfig
}

// NewOpenAIEmbedder creates a new OpenAI embedder
func NewOpenAIEmbedder(config model.EmbeddingConfig) (*OpenAIEmbedder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	embeddingModel := openai.SmallEmbedding3
	if config.Model != "" {
		embeddingModel = openai.EmbeddingModel(config.Model)
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  embeddingModel,
		config: config,
	}, nil
}

// Name returns the provider name
func (e *OpenAIEmbedder) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (e *OpenAIEmbedder) IsAvailable(ctx context.Context) bool {
	_, err := e.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Embed returns the embedding vector for a single text
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per input text, in order
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	timeout := e.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctxWithTimeout, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		vectors[item.Index] = Normalize(item.Embedding)
	}
	return vectors, nil
}
