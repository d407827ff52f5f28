/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package cache provides an in-memory LRU cache with per-entry expiry.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/asgardeo/forge/internal/system/log"
)

const (
	loggerComponentName = "InMemoryCache"
	// DefaultCacheSize is the number of entries held when no size is configured.
	DefaultCacheSize = 1000
	// DefaultCacheTTL is the entry lifetime used when no TTL is configured.
	DefaultCacheTTL = time.Hour
)

// CacheKey identifies a cache entry.
type CacheKey struct {
	Key string
}

// ToString returns the string form of the key.
func (k CacheKey) ToString() string {
	return k.Key
}

// CacheStat holds cache statistics.
type CacheStat struct {
	Enabled    bool
	Size       int
	MaxSize    int
	HitCount   int64
	MissCount  int64
	EvictCount int64
}

// CacheInterface defines the operations of a typed cache.
type CacheInterface[T any] interface {
	Set(key CacheKey, value T)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	DeleteByPrefix(prefix string) int
	Clear()
	IsEnabled() bool
	GetStats() CacheStat
}

type cacheEntry[T any] struct {
	value       T
	expiryTime  time.Time
	listElement *list.Element
}

// InMemoryCache implements CacheInterface with least recently used eviction.
type InMemoryCache[T any] struct {
	enabled     bool
	name        string
	entries     map[CacheKey]*cacheEntry[T]
	accessOrder *list.List
	mu          sync.Mutex
	size        int
	ttl         time.Duration
	now         func() time.Time
	hitCount    int64
	missCount   int64
	evictCount  int64
}

// NewInMemoryCache creates a new instance of InMemoryCache.
func NewInMemoryCache[T any](name string, enabled bool, size int, ttl time.Duration) *InMemoryCache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("cache", name))

	if !enabled {
		logger.Debug("In-memory cache is disabled")
		return &InMemoryCache[T]{name: name}
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	logger.Debug("Initializing in-memory cache", log.Int("size", size), log.Any("ttl", ttl))
	return &InMemoryCache[T]{
		enabled:     true,
		name:        name,
		entries:     make(map[CacheKey]*cacheEntry[T]),
		accessOrder: list.New(),
		size:        size,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Set adds or updates an entry in the cache.
func (c *InMemoryCache[T]) Set(key CacheKey, value T) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiryTime := c.now().Add(c.ttl)
	if existing, ok := c.entries[key]; ok {
		existing.value = value
		existing.expiryTime = expiryTime
		c.accessOrder.MoveToFront(existing.listElement)
		return
	}

	c.entries[key] = &cacheEntry[T]{
		value:       value,
		expiryTime:  expiryTime,
		listElement: c.accessOrder.PushFront(key),
	}
	if len(c.entries) > c.size {
		c.evictOldest()
	}
}

// Get retrieves a value from the cache.
func (c *InMemoryCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.missCount++
		return zero, false
	}
	if c.now().After(entry.expiryTime) {
		c.remove(key, entry)
		c.missCount++
		return zero, false
	}

	c.accessOrder.MoveToFront(entry.listElement)
	c.hitCount++
	return entry.value, true
}

// Delete removes an entry from the cache.
func (c *InMemoryCache[T]) Delete(key CacheKey) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.remove(key, entry)
	}
}

// DeleteByPrefix removes every entry whose key starts with prefix and returns the number removed.
func (c *InMemoryCache[T]) DeleteByPrefix(prefix string) int {
	if !c.enabled {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if strings.HasPrefix(key.Key, prefix) {
			c.remove(key, entry)
			removed++
		}
	}
	return removed
}

// Clear removes all entries from the cache.
func (c *InMemoryCache[T]) Clear() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]*cacheEntry[T])
	c.accessOrder.Init()
	c.hitCount = 0
	c.missCount = 0
	c.evictCount = 0
}

// IsEnabled returns whether the cache is enabled.
func (c *InMemoryCache[T]) IsEnabled() bool {
	return c.enabled
}

// GetStats returns cache statistics.
func (c *InMemoryCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:    true,
		Size:       len(c.entries),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		EvictCount: c.evictCount,
	}
}

// evictOldest removes the least recently used entry. The caller must hold the lock.
func (c *InMemoryCache[T]) evictOldest() {
	oldest := c.accessOrder.Back()
	if oldest == nil {
		return
	}
	key := oldest.Value.(CacheKey)
	c.remove(key, c.entries[key])
	c.evictCount++

	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Debug("Evicted cache entry", log.String("cache", c.name), log.String("key", key.ToString()))
}

// remove deletes an entry. The caller must hold the lock.
func (c *InMemoryCache[T]) remove(key CacheKey, entry *cacheEntry[T]) {
	c.accessOrder.Remove(entry.listElement)
	delete(c.entries, key)
}
