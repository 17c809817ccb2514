// Package cache provides an in-memory store of extracted colour lists keyed by image path.
package cache

import (
	"slices"
	"sync"
)

// Cache maps an image path to the colour list extracted from it.
//
// Entries never expire and are never evicted; a Cache lives as long as its
// owner. Lookups do not revisit the file, so a list stays cached even after
// the image on disk changes. Colour lists are copied on the way in and out.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]string
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string][]string),
	}
}

// Get returns the cached colours for path.
func (c *Cache) Get(path string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	colours, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	return slices.Clone(colours), true
}

// Put stores colours under path, replacing any previous entry.
func (c *Cache) Put(path string, colours []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = slices.Clone(colours)
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
