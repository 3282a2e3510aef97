package proofcache

import (
	"context"
	"sync"
)

// MemoryCache is an in-process Cache backed by a sync.Map, with no
// eviction; an Assembler uses it only when given it via WithCache. It never
// returns an error; Get/Put only fail in PostgresCache.
type MemoryCache struct {
	entries sync.Map // Key -> *Entry
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(ctx context.Context, key Key) (*Entry, bool, error) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	return v.(*Entry), true, nil
}

func (c *MemoryCache) Put(ctx context.Context, key Key, entry *Entry) error {
	c.entries.Store(key, entry)
	return nil
}
