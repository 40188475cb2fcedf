package jwks

import "sync"

// Cache is an in-process store of verification keys keyed by key ID.
// There is no expiry policy: entries live until the process exits or a
// refresh replaces them, matching the identity provider's own rotation
// cadence. Safe for concurrent use.
type Cache struct {
	mu   sync.RWMutex
	keys map[string]any
}

// NewCache creates an empty key cache.
func NewCache() *Cache {
	return &Cache{keys: make(map[string]any)}
}

// Get returns the key for keyID, or nil if absent.
func (c *Cache) Get(keyID string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keys[keyID]
}

// Set stores a key under keyID.
func (c *Cache) Set(keyID string, key any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[keyID] = key
}

// Clear removes all keys, forcing the next lookup to re-fetch.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = make(map[string]any)
}

// Size returns the number of cached keys.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}
