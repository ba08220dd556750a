package ragconfig

import (
	"sync"
	"time"

	"github.com/ironleaf/docmind/core"
)

// entryCache holds a point-in-time snapshot of all configuration entries.
// The whole snapshot expires together: either every key is served from the
// cache or the store reloads everything. Safe for concurrent use.
type entryCache struct {
	mu       sync.RWMutex
	entries  map[string]core.ConfigEntry
	loadedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

func newEntryCache(ttl time.Duration, now func() time.Time) *entryCache {
	if now == nil {
		now = time.Now
	}
	return &entryCache{
		ttl: ttl,
		now: now,
	}
}

// get returns the cached entry for key, or false when the snapshot is
// missing, expired, or does not contain the key.
func (c *entryCache) get(key string) (core.ConfigEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.fresh() {
		return core.ConfigEntry{}, false
	}
	entry, ok := c.entries[key]
	return entry, ok
}

// snapshot returns all cached entries, or false when the snapshot is stale.
func (c *entryCache) snapshot() (map[string]core.ConfigEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.fresh() {
		return nil, false
	}
	out := make(map[string]core.ConfigEntry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out, true
}

// fill replaces the snapshot and restarts the TTL window.
func (c *entryCache) fill(entries map[string]core.ConfigEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.loadedAt = c.now()
}

// invalidate drops the whole snapshot.
func (c *entryCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// fresh must be called with at least the read lock held.
func (c *entryCache) fresh() bool {
	if c.entries == nil {
		return false
	}
	return c.now().Sub(c.loadedAt) < c.ttl
}
