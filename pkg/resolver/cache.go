/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package resolver

import "sync"

// cacheEntry holds the memoized resolution for one service. Each entry
// carries its own mutex so resolution passes for independent services never
// serialize behind each other; the outer map lock is only held long enough
// to find or create the entry.
type cacheEntry struct {
	mu         sync.Mutex
	resolution *Resolution
}

// resolutionCache memoizes completed resolutions keyed by service
// identifier. Entries never expire on their own; staleness is the caller's
// concern and is handled through explicit invalidation.
type resolutionCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func newResolutionCache() *resolutionCache {
	return &resolutionCache{
		entries: make(map[string]*cacheEntry),
	}
}

// entryFor returns the entry for a service, creating it when absent. The
// returned entry's own mutex guards its resolution field.
func (c *resolutionCache) entryFor(service string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[service]
	if !ok {
		e = &cacheEntry{}
		c.entries[service] = e
	}
	return e
}

// invalidate drops the memoized resolution for one service. Other services'
// entries are untouched.
func (c *resolutionCache) invalidate(service string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, service)
}

// invalidateAll drops every memoized resolution.
func (c *resolutionCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}
