package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/verity/internal/model"
)

func TestOllamaEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("path = %q", r.URL.Path)
		}

		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "nomic-embed-text" {
			t.Errorf("model = %q", req.Model)
		}
		if req.Prompt != "the earth is flat" {
			t.Errorf("prompt = %q", req.Prompt)
		}

		_, _ = w.Write([]byte(`{"embedding": [3, 4]}`))
	}))
	defer server.Close()

	e, err := NewOllamaEmbedder(model.EmbeddingConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaEmbedder: %v", err)
	}

	vec, err := e.Embed(context.Background(), "the earth is flat")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	// Vectors come back unit-length
	var length float64
	for _, x := range vec {
		length += float64(x) * float64(x)
	}
	if math.Abs(length-1) > 1e-6 {
		t.Errorf("length² = %v, want 1", length)
	}
}

func TestOllamaEmbedder_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	e, err := NewOllamaEmbedder(model.EmbeddingConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaEmbedder: %v", err)
	}

	if _, err := e.Embed(context.Background(), "anything"); err == nil {
		t.Error("expected an error from the API")
	}
}

func TestOllamaEmbedder_EmbedBatch(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"embedding": [1, 0]}`))
	}))
	defer server.Close()

	e, err := NewOllamaEmbedder(model.EmbeddingConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaEmbedder: %v", err)
	}

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(vecs) != 3 {
		t.Errorf("got %d vectors, want 3", len(vecs))
	}
	if calls != 3 {
		t.Errorf("made %d calls, want one per text", calls)
	}
}

func TestOllamaEmbedder_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	e, err := NewOllamaEmbedder(model.EmbeddingConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewOllamaEmbedder: %v", err)
	}
	if !e.IsAvailable(context.Background()) {
		t.Error("expected available")
	}

	server.Close()
	if e.IsAvailable(context.Background()) {
		t.Error("expected unavailable after server shutdown")
	}
}
