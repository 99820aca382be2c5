package model

// Claim is a corpus entry: a known statement with a precomputed verdict.
// The corpus is read-only after load; Embedding is computed once at load time.
type Claim struct {
	ID          string    `json:"id" yaml:"id"`
	Text        string    `json:"text" yaml:"text"` // Normalized claim text (lowercase, punctuation-stripped)
	Verdict     Verdict   `json:"verdict" yaml:"verdict"`
	Confidence  float64   `json:"confidence" yaml:"confidence"` // 0-100
	Explanation string    `json:"explanation" yaml:"explanation"`
	Evidence    []string  `json:"evidence" yaml:"evidence"`
	Sources     []string  `json:"sources" yaml:"sources"`
	Embedding   []float32 `json:"-" yaml:"-"`
}
