package model

import "time"

// Config holds all tunable settings for the verification engine.
// Thresholds are deliberately configuration, not constants: the defaults are
// empirical and tests pin their own values.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Match     MatchConfig     `yaml:"match"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Sources   SourcesConfig   `yaml:"sources"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
	Output    OutputConfig    `yaml:"output"`
}

// CorpusConfig controls where known claims are loaded from
type CorpusConfig struct {
	// Path to a YAML claims file. Empty means the embedded seed corpus.
	Path string `yaml:"path"`
}

// MatchConfig holds the matcher tier thresholds
type MatchConfig struct {
	FuzzyThreshold      float64 `yaml:"fuzzy_threshold"`      // Token-overlap similarity for near-exact hits
	SemanticThreshold   float64 `yaml:"semantic_threshold"`   // Minimum cosine similarity for a semantic hit
	EscalationThreshold float64 `yaml:"escalation_threshold"` // Hybrid: local confidence below this escalates to sources
}

// EmbeddingConfig configures the embedding provider
type EmbeddingConfig struct {
	Provider string        `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SourcesConfig configures the external verification sources.
// A source with an empty credential is silently skipped.
type SourcesConfig struct {
	Timeout           time.Duration `yaml:"timeout"` // Per-source query timeout
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size"`
	UserAgent         string        `yaml:"user_agent"`
	HTTPProxy         string        `yaml:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy"`

	GoogleFactCheckAPIKey string `yaml:"google_factcheck_api_key"`
	ClaimBusterAPIKey     string `yaml:"claimbuster_api_key"`
	FactiverseAPIKey      string `yaml:"factiverse_api_key"`
}

// CacheConfig configures the result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Dir     string        `yaml:"dir"` // Disk layer directory; empty disables the disk layer
}

// ServerConfig configures the HTTP API front door
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			FuzzyThreshold:      0.9,
			SemanticThreshold:   0.65,
			EscalationThreshold: 70.0,
		},
		Embedding: EmbeddingConfig{
			Provider: "",
			Timeout:  30 * time.Second,
		},
		Sources: SourcesConfig{
			Timeout:           15 * time.Second,
			RequestsPerSecond: 2.0,
			BurstSize:         5,
			UserAgent:         "Verity/0.1 (+https://github.com/ppiankov/verity)",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}
