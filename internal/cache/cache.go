// Package cache stores verifier verdicts so that re-running an analysis does
// not repeat paid API calls for claims already judged by the same verifier.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/veridict/veridict/internal/model"
)

// Store is the byte-level cache backing the verdict cache tiers
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one verifier's judgment of one claim
func Key(verifier, claim string) string {
	hash := sha256.Sum256([]byte(verifier + "\x00" + claim))
	return "veridict:v1:" + hex.EncodeToString(hash[:])
}

// VerdictCache is a typed wrapper over a Store
type VerdictCache struct {
	store Store
	ttl   time.Duration
}

// NewVerdictCache wraps store with the default TTL for verdict entries
func NewVerdictCache(store Store, ttl time.Duration) *VerdictCache {
	return &VerdictCache{store: store, ttl: ttl}
}

// Get returns the cached verdict for (verifier, claim), if any
func (c *VerdictCache) Get(verifier, claim string) (model.Verdict, bool) {
	raw, ok := c.store.Get(Key(verifier, claim))
	if !ok {
		return "", false
	}
	v := model.Verdict(raw)
	if !v.Valid() {
		_ = c.store.Delete(Key(verifier, claim))
		return "", false
	}
	return v, true
}

// Set records a verdict for (verifier, claim)
func (c *VerdictCache) Set(verifier, claim string, verdict model.Verdict) error {
	return c.store.Set(Key(verifier, claim), []byte(verdict), c.ttl)
}
