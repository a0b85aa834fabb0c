// Package memory is the in-process ResultCache. Entries live in a plain map
// guarded by a mutex; every Get first sweeps out all expired entries, so the
// map never outgrows the set of searches made within one TTL.
package memory

import (
	"context"
	"sync"
	"time"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/pkg/clock"
)

type key struct {
	userID int64
	text   string
}

type entry struct {
	result    ports.CachedResult
	writtenAt time.Time
}

// Cache implements ports.ResultCache.
type Cache struct {
	mu      sync.Mutex
	entries map[key]entry
	ttl     time.Duration
	clock   clock.Clock
}

// NewCache creates a cache whose entries expire ttl after they were written.
// A non-positive ttl selects ports.DefaultResultTTL.
func NewCache(ttl time.Duration, clk clock.Clock) *Cache {
	if ttl <= 0 {
		ttl = ports.DefaultResultTTL
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Cache{
		entries: make(map[key]entry),
		ttl:     ttl,
		clock:   clk,
	}
}

// Get sweeps expired entries, then looks up (userID, queryText).
func (c *Cache) Get(_ context.Context, userID int64, queryText string) (ports.CachedResult, bool, error) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if now.Sub(e.writtenAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	e, ok := c.entries[key{userID: userID, text: vacancy.NormalizeText(queryText)}]
	if !ok {
		return ports.CachedResult{}, false, nil
	}
	return e.result, true, nil
}

// Put stores result, replacing any previous entry for the same key.
func (c *Cache) Put(_ context.Context, userID int64, queryText string, result ports.CachedResult) error {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key{userID: userID, text: vacancy.NormalizeText(queryText)}] = entry{
		result:    result,
		writtenAt: now,
	}
	return nil
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
