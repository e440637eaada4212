// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import "sync"

const maxCachedLookups = 4096

type lookupCache struct {
	mux   sync.RWMutex
	cache map[string][]Hit
}

func newLookupCache() *lookupCache {
	return &lookupCache{cache: make(map[string][]Hit)}
}

func (c *lookupCache) fetch(key string) (hits []Hit, ok bool) {
	c.mux.RLock()
	hits, ok = c.cache[key]
	c.mux.RUnlock()
	return
}

// put stops caching new names once the cache is full; names seen so far stay cached.
func (c *lookupCache) put(key string, hits []Hit) {
	c.mux.Lock()
	if len(c.cache) < maxCachedLookups {
		c.cache[key] = hits
	}
	c.mux.Unlock()
}

func (c *lookupCache) len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.cache)
}
