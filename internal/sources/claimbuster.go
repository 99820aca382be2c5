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

// claimBusterURL is overridable for tests
var claimBusterURL = "https://idir.uta.edu/claimbuster/api/v2/score/text"

// ClaimBuster queries the ClaimBuster check-worthiness API. ClaimBuster does
// not issue verdicts; it scores how much a statement asserts checkable facts.
// A low score reads as "not a factual claim", a high score as "needs
// verification". Neither is decisive on its own; the aggregator weighs them.
// https://idir.uta.edu/claimbuster/
type ClaimBuster struct {
	apiKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClaimBuster creates a ClaimBuster client
func NewClaimBuster(cfg model.SourcesConfig) *ClaimBuster {
	return &ClaimBuster{
		apiKey:     cfg.ClaimBusterAPIKey,
		userAgent:  cfg.UserAgent,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     slog.Default().With("component", "source", "source", "claimbuster"),
	}
}

// Name returns the source name
func (c *ClaimBuster) Name() string {
	return "ClaimBuster"
}

// Configured reports whether an API key is present
func (c *ClaimBuster) Configured() bool {
	return c.apiKey != ""
}

type claimBusterRequest struct {
	InputText string `json:"input_text"`
}

type claimBusterResponse struct {
	Results []struct {
		Score float64 `json:"score"`
		Text  string  `json:"text"`
	} `json:"results"`
}

// Query scores the claim's check-worthiness
func (c *ClaimBuster) Query(ctx context.Context, claim string) (*model.SourceResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(claimBusterRequest{InputText: claim})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claimBusterURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data claimBusterResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(data.Results) == 0 {
		return nil, nil
	}

	score := data.Results[0].Score

	var rating Rating
	var explanation string
	switch {
	case score >= 0.5:
		rating = RatingUncertain
		explanation = fmt.Sprintf(
			"This claim has a check-worthiness score of %.2f, indicating it makes factual assertions that should be verified.", score)
	default:
		rating = RatingUnverifiable
		explanation = fmt.Sprintf(
			"This claim has a low check-worthiness score (%.2f), indicating it may be opinion-based or not contain verifiable factual claims.", score)
	}

	return &model.SourceResponse{
		SourceName:  c.Name(),
		Verdict:     rating.Verdict(),
		Confidence:  score * 100,
		RawRating:   fmt.Sprintf("check-worthiness %.2f", score),
		Explanation: explanation,
		CitationURL: "https://idir.uta.edu/claimbuster/",
		Citations:   []string{"ClaimBuster"},
	}, nil
}
