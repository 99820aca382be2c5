package model

import "time"

// VerificationRequest is a request to verify one piece of text
type VerificationRequest struct {
	Text     string   `json:"text"`
	Strategy Strategy `json:"strategy,omitempty"`

	// Informational only, never used in matching
	Platform string `json:"platform,omitempty"`
	Author   string `json:"author,omitempty"`
	URL      string `json:"url,omitempty"`
}

// VerificationResult is the outcome of verifying a claim
type VerificationResult struct {
	Verdict        Verdict   `json:"verdict"`
	Confidence     float64   `json:"confidence"` // 0-100
	Explanation    string    `json:"explanation"`
	Evidence       []string  `json:"evidence"`
	Sources        []string  `json:"sources"`
	StrategyUsed   Tier      `json:"strategy_used"` // Tier that produced the answer
	Cached         bool      `json:"cached"`
	ProcessingTime float64   `json:"processing_time"` // Seconds
	Timestamp      time.Time `json:"timestamp"`
}

// SourceResponse is one external source's opinion on a claim.
// A source that times out or errors produces no response at all;
// absence is handled by the aggregator, not encoded here.
type SourceResponse struct {
	SourceName  string   `json:"source_name"`
	Verdict     Verdict  `json:"verdict"`
	Confidence  float64  `json:"confidence"`             // 0-100
	RawRating   string   `json:"raw_rating,omitempty"`   // Source-native rating text
	Explanation string   `json:"explanation,omitempty"`
	CitationURL string   `json:"citation_url,omitempty"`
	Citations   []string `json:"citations,omitempty"` // Publisher names backing the verdict
}
