package tools

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/papermind/mcp-paper-tools/internal/paper"
)

// StructureCache holds parsed document structures keyed by document
// identifier. Entries expire after a TTL measured from their write time; when
// the cache is full the entry with the oldest write timestamp is evicted
// before a new one is inserted. Reads never refresh a timestamp.
type StructureCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	ttl      time.Duration
	capacity int
	now      func() time.Time
	group    singleflight.Group
	hits     int64
	misses   int64
}

type cacheEntry struct {
	structure *paper.Structure
	timestamp time.Time
}

// CacheStats reports cache performance counters.
type CacheStats struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Size     int   `json:"size"`
	Capacity int   `json:"capacity"`
}

// NewStructureCache creates a cache with the given TTL and capacity. The clock
// defaults to time.Now and is injectable for tests.
func NewStructureCache(ttl time.Duration, capacity int) *StructureCache {
	if capacity <= 0 {
		capacity = 10
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StructureCache{
		entries:  make(map[string]*cacheEntry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// SetClock replaces the cache's time source. Intended for tests.
func (c *StructureCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached structure for key if present and not expired.
func (c *StructureCache) Get(key string) (*paper.Structure, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists || c.now().Sub(entry.timestamp) >= c.ttl {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.structure, true
}

// GetOrLoad returns the cached structure for key, invoking load on a miss or
// an expired entry. Concurrent calls for the same uncached key share a single
// load; different keys load independently.
func (c *StructureCache) GetOrLoad(ctx context.Context, key string,
	load func(ctx context.Context) (*paper.Structure, error),
) (*paper.Structure, error) {
	if structure, ok := c.Get(key); ok {
		return structure, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent call may have populated the entry while this one was
		// waiting on the flight group.
		c.mu.Lock()
		if entry, exists := c.entries[key]; exists && c.now().Sub(entry.timestamp) < c.ttl {
			structure := entry.structure
			c.mu.Unlock()
			return structure, nil
		}
		c.mu.Unlock()

		structure, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, structure)
		return structure, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*paper.Structure), nil
}

// put inserts a structure, evicting the oldest-written entry when at capacity.
func (c *StructureCache) put(key string, structure *paper.Structure) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = &cacheEntry{
		structure: structure,
		timestamp: c.now(),
	}
}

// evictOldest removes the entry with the smallest write timestamp. Caller
// holds the lock.
func (c *StructureCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.timestamp.Before(oldest) {
			oldestKey = key
			oldest = entry.timestamp
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Invalidate removes one entry.
func (c *StructureCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear empties the cache.
func (c *StructureCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.hits = 0
	c.misses = 0
}

// Len returns the number of cached entries, expired or not.
func (c *StructureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the cached keys in no particular order.
func (c *StructureCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns cache performance counters.
func (c *StructureCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		Size:     len(c.entries),
		Capacity: c.capacity,
	}
}
