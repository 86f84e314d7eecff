package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is bumped when the cached Display shape changes,
// so entries written by an older build are dropped
const CacheSchemaVersion = "1.0"

type cachedDisplay struct {
	Version  string
	Display  *Display
	CachedAt time.Time
}

// displayCache is an LRU of display catalogs keyed by game type id, with a TTL
type displayCache struct {
	lru *expirable.LRU[string, *cachedDisplay]
}

func newDisplayCache(size int, ttl time.Duration) *displayCache {
	return &displayCache{
		lru: expirable.NewLRU[string, *cachedDisplay](size, nil, ttl),
	}
}

// Get returns the cached display for a game type if present and current
func (c *displayCache) Get(gameTypeID string) (*Display, bool) {
	entry, found := c.lru.Get(gameTypeID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(gameTypeID)
		return nil, false
	}
	return entry.Display, true
}

func (c *displayCache) Set(gameTypeID string, d *Display) {
	c.lru.Add(gameTypeID, &cachedDisplay{
		Version:  CacheSchemaVersion,
		Display:  d,
		CachedAt: time.Now(),
	})
}

func (c *displayCache) Invalidate(gameTypeID string) {
	c.lru.Remove(gameTypeID)
}

func (c *displayCache) Len() int {
	return c.lru.Len()
}
