// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package discovery resolves the three DNS-published facts a Shapeshifter
// participant needs about a peer: its protocol version, its message
// endpoint URL, and its public signing (and optional encryption) key. All
// three are wrapped by a shared TTL cache, and concurrent lookups for the
// same key are collapsed via singleflight — the Go-native equivalent of
// original_source/.../transport.py's @ttl_cache(3600) decorator.
package discovery

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the lifetime of a cache entry, per spec.md §3.5.
const DefaultTTL = 3600 * time.Second

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// ttlCache is a generic, concurrency-safe cache keyed by an arbitrary
// string (callers compose the key from the argument tuple, as
// original_source's ttl_cache() does from *args/**kwargs). Grounded on
// health/checker.go's cachedResult{result, expiresAt} map-cache shape.
type ttlCache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]cacheEntry
	sf  singleflight.Group
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, m: make(map[string]cacheEntry)}
}

func (c *ttlCache) get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *ttlCache) set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// getOrResolve returns the cached value for key if present and unexpired;
// otherwise it calls resolve at most once per set of concurrent callers
// sharing the same key (via singleflight), caches the result on success,
// and returns it to all waiters.
func (c *ttlCache) getOrResolve(key string, resolve func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.get(key); ok {
		return v, nil
	}
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if v, ok := c.get(key); ok {
			return v, nil
		}
		v, err := resolve()
		if err != nil {
			return nil, err
		}
		c.set(key, v)
		return v, nil
	})
	return v, err
}
