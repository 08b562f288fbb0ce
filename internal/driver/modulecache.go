package driver

import "sync"

// memoryCache is the per-process layer in front of the disk cache.
type memoryCache struct {
	mu    sync.RWMutex
	byKey map[Digest]Summary
}

func newMemoryCache(capHint int) *memoryCache {
	return &memoryCache{byKey: make(map[Digest]Summary, capHint)}
}

func (c *memoryCache) get(key Digest) (Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byKey[key]
	return s, ok
}

func (c *memoryCache) put(key Digest, s Summary) {
	c.mu.Lock()
	c.byKey[key] = s
	c.mu.Unlock()
}

func (c *memoryCache) clear() {
	c.mu.Lock()
	clear(c.byKey)
	c.mu.Unlock()
}
