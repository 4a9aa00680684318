package api

import (
	"strings"
	"sync"
)

// responseCache keeps successful GET response bodies by request url.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func newResponseCache() *responseCache {
	return &responseCache{entries: map[string][]byte{}}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[key]
	return body, ok
}

func (c *responseCache) set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

// invalidate drops every entry whose url path starts with one of prefixes.
func (c *responseCache) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		path := key
		if i := strings.Index(path, "?"); i >= 0 {
			path = path[:i]
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(path, prefix) {
				delete(c.entries, key)
				break
			}
		}
	}
}

func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]byte{}
}
