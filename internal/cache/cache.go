package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/verity/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
	Stats() Stats
}

// Stats describes the current contents of a cache
type Stats struct {
	ItemCount int   `json:"item_count"`
	SizeBytes int64 `json:"size_bytes"`
}

// ResultKey generates a cache key from normalized claim text and strategy.
// The same text verified under a different strategy is a different entry.
func ResultKey(normalizedText string, strategy model.Strategy) string {
	hash := sha256.Sum256([]byte(normalizedText + "|" + string(strategy)))
	return "verity:v1:" + hex.EncodeToString(hash[:])
}
