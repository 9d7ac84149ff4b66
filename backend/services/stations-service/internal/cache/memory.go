package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"voltfinder/backend/services/stations-service/internal/models"
)

// MemoryCache is an in-process cache with a fixed TTL and a maximum entry
// count enforced by least-recently-used eviction. Expired entries are
// dropped on read; the LRU bound keeps an unbounded key space (per-exact-GPS
// queries) from leaking memory.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	order      *list.List
	entries    map[string]*list.Element
	now        func() time.Time
}

type memoryEntry struct {
	key      string
	storedAt time.Time
	stations []models.ChargingStation
}

// NewMemoryCache builds a cache with the given TTL and entry bound.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get returns the cached stations when the entry is fresh. Callers must not
// mutate the returned slice.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]models.ChargingStation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*memoryEntry)
	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.order.Remove(elem)
		delete(c.entries, key)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.stations, true
}

// Set stores the stations under the key, refreshing the timestamp of an
// existing entry and evicting the least recently used entry when full.
func (c *MemoryCache) Set(ctx context.Context, key string, stations []models.ChargingStation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.storedAt = c.now()
		entry.stations = stations
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&memoryEntry{key: key, storedAt: c.now(), stations: stations})
	c.entries[key] = elem

	for len(c.entries) > c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoryEntry).key)
	}
}
