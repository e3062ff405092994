package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RenderCache holds data computed from one revision of the feed document.
// An entry is only returned for the revision it was built from, so writes made by any
// process (another server, feedctl) retire it on the next read.
type RenderCache struct {
	entries *lru.Cache[string, renderEntry]
	ttl     time.Duration
}

type renderEntry struct {
	data      interface{}
	revision  int64
	expiresAt time.Time
}

// NewRenderCache keeps at most size entries, each for at most ttl.
func NewRenderCache(size int, ttl time.Duration) (*RenderCache, error) {
	l, err := lru.New[string, renderEntry](size)
	if err != nil {
		return nil, err
	}
	return &RenderCache{entries: l, ttl: ttl}, nil
}

// Put stores data built from the document at revision.
func (c *RenderCache) Put(key string, revision int64, data interface{}) {
	if prev, ok := c.entries.Peek(key); ok && prev.revision > revision {
		// a slower reader must not replace a newer entry
		return
	}
	c.entries.Add(key, renderEntry{
		data:      data,
		revision:  revision,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Lookup returns the data stored for key at exactly revision.
func (c *RenderCache) Lookup(key string, revision int64) (interface{}, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if e.revision != revision || time.Now().After(e.expiresAt) {
		if e.revision <= revision {
			c.entries.Remove(key)
		}
		return nil, false
	}
	return e.data, true
}

func (c *RenderCache) Len() int {
	return c.entries.Len()
}
