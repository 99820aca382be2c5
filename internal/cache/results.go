package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ppiankov/verity/internal/model"
)

// ResultCache stores verification results keyed by (normalized text, strategy).
// It is safe for concurrent use: the backends synchronize internally and the
// wrapper holds no mutable state of its own.
type ResultCache struct {
	backend Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewResultCache creates a result cache over the given backend.
// A zero ttl falls back to 24 hours.
func NewResultCache(backend Cache, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ResultCache{
		backend: backend,
		ttl:     ttl,
		logger:  slog.Default().With("component", "result-cache"),
	}
}

// Get looks up a previously computed result. A hit returns a copy with
// Cached set; a decode failure is treated as a miss.
func (c *ResultCache) Get(normalizedText string, strategy model.Strategy) (*model.VerificationResult, bool) {
	key := ResultKey(normalizedText, strategy)

	data, found := c.backend.Get(key)
	if !found {
		return nil, false
	}

	var result model.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("discarding undecodable cache entry", "key", key[:16], "err", err)
		_ = c.backend.Delete(key)
		return nil, false
	}

	result.Cached = true
	return &result, true
}

// Set stores a freshly computed result. Failures are logged and swallowed:
// an unavailable cache must never fail a verification.
func (c *ResultCache) Set(normalizedText string, strategy model.Strategy, result *model.VerificationResult) {
	key := ResultKey(normalizedText, strategy)

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("failed to encode result for caching", "err", err)
		return
	}

	if err := c.backend.Set(key, data, c.ttl); err != nil {
		c.logger.Warn("failed to write cache entry", "key", key[:16], "err", err)
	}
}

// Clear removes all cached results
func (c *ResultCache) Clear() error {
	return c.backend.Clear()
}

// Stats reports item count and size of the backing store
func (c *ResultCache) Stats() Stats {
	return c.backend.Stats()
}
