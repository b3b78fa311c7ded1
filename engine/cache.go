package engine

import "sort"

// DefaultCacheCapacity bounds the render cache when no explicit
// capacity option is given.
const DefaultCacheCapacity = 700

// cacheEntry pairs a resource handle with its last-access tick.
type cacheEntry struct {
	handle   string
	lastUsed uint64
}

// renderCache is a strict LRU map from render key to resource handle.
// Recency is tracked with a logical tick supplied by the caller, which
// keeps eviction order exact even when accesses land within one clock
// granule. The cache owns its handles: replaced and evicted entries have
// their resources released.
//
// Callers synchronize access; the engine mutates the cache only under
// its own mutex.
type renderCache struct {
	capacity int
	entries  map[string]*cacheEntry
	release  func(handle string)
}

func newRenderCache(capacity int, release func(string)) *renderCache {
	if capacity < 1 {
		capacity = 1
	}
	return &renderCache{
		capacity: capacity,
		entries:  map[string]*cacheEntry{},
		release:  release,
	}
}

// get returns the handle for key, touching its recency on a hit.
func (c *renderCache) get(key string, tick uint64) (string, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	entry.lastUsed = tick
	return entry.handle, true
}

// set stores a handle for key, releasing any prior handle it replaces,
// then evicts down to capacity. The cache never exceeds its capacity
// after set returns.
func (c *renderCache) set(key, handle string, tick uint64) {
	if prior, ok := c.entries[key]; ok {
		if prior.handle != handle {
			c.release(prior.handle)
		}
		prior.handle = handle
		prior.lastUsed = tick
		return
	}
	c.entries[key] = &cacheEntry{handle: handle, lastUsed: tick}
	c.evict()
}

// evict removes the least-recently-used entries beyond capacity,
// releasing each evicted resource.
func (c *renderCache) evict() {
	over := len(c.entries) - c.capacity
	if over <= 0 {
		return
	}

	type keyed struct {
		key      string
		lastUsed uint64
	}
	all := make([]keyed, 0, len(c.entries))
	for key, entry := range c.entries {
		all = append(all, keyed{key: key, lastUsed: entry.lastUsed})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].lastUsed < all[j].lastUsed })

	for _, victim := range all[:over] {
		c.release(c.entries[victim.key].handle)
		delete(c.entries, victim.key)
	}
}

func (c *renderCache) len() int { return len(c.entries) }
