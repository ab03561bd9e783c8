// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache memoizes complete graph build results keyed by a
// fingerprint of the build inputs, with TTL and size-pressure eviction.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/citegraph/pkg/types"
)

// Fingerprint derives the deterministic cache key from a topic and the
// input paper ID set. A fixed-width content hash avoids the collision
// risk of truncated ID concatenation on large corpora. The ID order
// does not matter.
func Fingerprint(topic string, ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(topic))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(sorted, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	artifact types.GraphArtifact
	storedAt time.Time
}

// Cache is a bounded in-memory store of graph artifacts. Safe for
// concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int

	// now is replaceable so tests can step time without sleeping.
	now func() time.Time
}

// New returns a cache holding at most maxEntries artifacts for ttl each.
func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the unexpired artifact stored under fingerprint. Expired
// or corrupted entries are dropped and reported as misses, which makes
// the caller recompute.
func (c *Cache) Get(fingerprint string) (types.GraphArtifact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fingerprint]
	if !ok {
		return types.GraphArtifact{}, false
	}
	if c.now().Sub(e.storedAt) > c.ttl || !valid(fingerprint, e.artifact) {
		delete(c.entries, fingerprint)
		return types.GraphArtifact{}, false
	}
	return e.artifact, true
}

// Put stores an artifact under its own fingerprint. When the cache
// exceeds its size bound, expired entries are swept first, then the
// oldest entries are evicted until the bound holds.
func (c *Cache) Put(artifact types.GraphArtifact) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[artifact.Fingerprint] = entry{artifact: artifact, storedAt: c.now()}
	if len(c.entries) <= c.maxEntries {
		return
	}

	for fp, e := range c.entries {
		if c.now().Sub(e.storedAt) > c.ttl {
			delete(c.entries, fp)
		}
	}
	for len(c.entries) > c.maxEntries {
		oldestFP := ""
		var oldest time.Time
		for fp, e := range c.entries {
			if oldestFP == "" || e.storedAt.Before(oldest) {
				oldestFP, oldest = fp, e.storedAt
			}
		}
		delete(c.entries, oldestFP)
	}
}

// Len reports the number of stored artifacts, including expired ones
// not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// valid rejects artifacts that fail basic integrity checks, treating
// them as cache corruption.
func valid(fingerprint string, a types.GraphArtifact) bool {
	return a.Fingerprint == fingerprint && !a.CreatedAt.IsZero()
}
