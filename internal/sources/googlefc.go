package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/ppiankov/verity/internal/model"
)

// googleFactCheckURL is overridable for tests
var googleFactCheckURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// GoogleFactCheck queries the Google Fact Check Tools claim search API.
// https://developers.google.com/fact-check/tools/api
type GoogleFactCheck struct {
	apiKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewGoogleFactCheck creates a Google Fact Check client
func NewGoogleFactCheck(cfg model.SourcesConfig) *GoogleFactCheck {
	return &GoogleFactCheck{
		apiKey:     cfg.GoogleFactCheckAPIKey,
		userAgent:  cfg.UserAgent,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     slog.Default().With("component", "source", "source", "google-factcheck"),
	}
}

// Name returns the source name
func (g *GoogleFactCheck) Name() string {
	return "Google Fact Check"
}

// Configured reports whether an API key is present
func (g *GoogleFactCheck) Configured() bool {
	return g.apiKey != ""
}

type googleResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Query searches for published fact-checks matching the claim
func (g *GoogleFactCheck) Query(ctx context.Context, claim string) (*model.SourceResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("query", claim)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleFactCheckURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(data.Claims) == 0 || len(data.Claims[0].ClaimReview) == 0 {
		g.logger.Debug("no fact-checks found", "claim", truncate(claim, 50))
		return nil, nil
	}

	// The API orders claims by relevance; the first review of the first
	// claim carries the overall rating, the rest contribute citations.
	reviews := data.Claims[0].ClaimReview
	rating := NormalizeRating(reviews[0].TextualRating)

	var citations []string
	agreement := true
	for _, review := range reviews {
		if name := review.Publisher.Name; name != "" {
			citations = append(citations, name)
		}
		if NormalizeRating(review.TextualRating) != rating {
			agreement = false
		}
	}

	return &model.SourceResponse{
		SourceName:  g.Name(),
		Verdict:     rating.Verdict(),
		Confidence:  reviewConfidence(len(reviews), agreement),
		RawRating:   reviews[0].TextualRating,
		Explanation: reviewExplanation(rating, citations),
		CitationURL: reviews[0].URL,
		Citations:   citations,
	}, nil
}

// reviewConfidence scores by source count and agreement, capped below
// certainty: published fact-checks are strong but not absolute.
func reviewConfidence(reviewCount int, agreement bool) float64 {
	confidence := float64(reviewCount * 15)
	if confidence > 60 {
		confidence = 60
	}
	if agreement {
		confidence += 30
	}
	if reviewCount >= 3 {
		confidence += 10
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

func reviewExplanation(rating Rating, citations []string) string {
	desc := map[Rating]string{
		RatingTrue:         "verified as true",
		RatingMostlyTrue:   "rated as mostly true",
		RatingMixed:        "received mixed ratings",
		RatingMostlyFalse:  "rated as mostly false",
		RatingFalse:        "debunked as false",
		RatingUnverifiable: "could not be verified",
		RatingUncertain:    "received uncertain ratings",
	}[rating]

	switch len(citations) {
	case 0:
		return "No fact-checks found for this claim."
	case 1:
		return fmt.Sprintf("This claim was %s by %s.", desc, citations[0])
	default:
		return fmt.Sprintf("This claim was %s by %d independent fact-checkers.", desc, len(citations))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
