package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/ppiankov/verity/internal/model"
)

// factiverseURL is overridable for tests
var factiverseURL = "https://api.factiverse.ai/v1/fact-check"

// Factiverse queries the Factiverse fact-checking API, which returns a
// direct verdict with supporting evidence snippets.
type Factiverse struct {
	apiKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewFactiverse creates a Factiverse client
func NewFactiverse(cfg model.SourcesConfig) *Factiverse {
	return &Factiverse{
		apiKey:     cfg.FactiverseAPIKey,
		userAgent:  cfg.UserAgent,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     slog.Default().With("component", "source", "source", "factiverse"),
	}
}

// Name returns the source name
func (f *Factiverse) Name() string {
	return "Factiverse"
}

// Configured reports whether an API key is present
func (f *Factiverse) Configured() bool {
	return f.apiKey != ""
}

type factiverseRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type factiverseResponse struct {
	Verdict     string  `json:"verdict"`
	Confidence  float64 `json:"confidence"` // 0-1
	Explanation string  `json:"explanation"`
	Evidence    []struct {
		Source string `json:"source"`
		URL    string `json:"url"`
		Text   string `json:"text"`
	} `json:"evidence"`
}

// Query asks Factiverse for a verdict on the claim
func (f *Factiverse) Query(ctx context.Context, claim string) (*model.SourceResponse, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(factiverseRequest{Text: claim, Language: "en"})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, factiverseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data factiverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	rating := NormalizeRating(data.Verdict)

	var citations []string
	var citationURL string
	for i, item := range data.Evidence {
		if i >= 5 { // A handful of citations is plenty
			break
		}
		if item.Source != "" {
			citations = append(citations, item.Source)
		}
		if citationURL == "" && item.URL != "" {
			citationURL = item.URL
		}
	}

	explanation := data.Explanation
	if explanation == "" {
		explanation = reviewExplanation(rating, citations)
	}

	return &model.SourceResponse{
		SourceName:  f.Name(),
		Verdict:     rating.Verdict(),
		Confidence:  data.Confidence * 100,
		RawRating:   data.Verdict,
		Explanation: explanation,
		CitationURL: citationURL,
		Citations:   citations,
	}, nil
}
