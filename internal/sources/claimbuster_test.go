package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/verity/internal/model"
)

func TestClaimBuster_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}

		var req claimBusterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.InputText != "the earth is flat" {
			t.Errorf("input_text = %q", req.InputText)
		}

		_, _ = w.Write([]byte(`{"results": [{"score": 0.82, "text": "the earth is flat"}]}`))
	}))
	defer server.Close()

	orig := claimBusterURL
	claimBusterURL = server.URL
	defer func() { claimBusterURL = orig }()

	src := NewClaimBuster(testSourcesConfig())
	resp, err := src.Query(context.Background(), "the earth is flat")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp == nil {
		t.Fatal("expected a response")
	}

	// High check-worthiness reads as "needs verification", never a verdict
	if resp.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want UNCERTAIN", resp.Verdict)
	}
	if resp.Confidence != 82 {
		t.Errorf("confidence = %v, want 82", resp.Confidence)
	}
}

func TestClaimBuster_LowScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"score": 0.12, "text": "pizza is tasty"}]}`))
	}))
	defer server.Close()

	orig := claimBusterURL
	claimBusterURL = server.URL
	defer func() { claimBusterURL = orig }()

	src := NewClaimBuster(testSourcesConfig())
	resp, err := src.Query(context.Background(), "pizza is tasty")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp == nil {
		t.Fatal("expected a response")
	}

	if resp.Verdict != model.VerdictUnverifiable {
		t.Errorf("verdict = %s, want UNVERIFIABLE", resp.Verdict)
	}
	if resp.Confidence != 12 {
		t.Errorf("confidence = %v, want 12", resp.Confidence)
	}
}

func TestClaimBuster_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	orig := claimBusterURL
	claimBusterURL = server.URL
	defer func() { claimBusterURL = orig }()

	src := NewClaimBuster(testSourcesConfig())
	resp, err := src.Query(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp != nil {
		t.Errorf("expected nil response for empty results, got %+v", resp)
	}
}
