package hashing

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/stats"
)

// DefaultCacheSize is the number of entries kept when no size is given.
const DefaultCacheSize = 1 << 16

type cacheKey struct {
	hash  uint64
	depth int
}

// Cache is a bounded, thread-safe transposition table mapping a position
// hash and a search depth to a node count.
type Cache struct {
	entries   *lru.Cache[cacheKey, uint64]
	collector stats.Collector
	hits      atomic.Int64
	misses    atomic.Int64
}

// NewCache creates a cache holding up to size entries, least recently used
// first out. A nil collector discards metrics.
func NewCache(size int, collector stats.Collector) (*Cache, error) {
	if size <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "cache size %d must be positive", size)
	}
	entries, err := lru.New[cacheKey, uint64](size)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "cache: %v", err)
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Cache{entries: entries, collector: collector}, nil
}

// Get returns the node count stored for hash at depth.
func (c *Cache) Get(hash uint64, depth int) (uint64, bool) {
	nodes, ok := c.entries.Get(cacheKey{hash: hash, depth: depth})
	if ok {
		c.hits.Add(1)
		c.collector.IncCounter(stats.MetricCacheHits, 1)
	} else {
		c.misses.Add(1)
		c.collector.IncCounter(stats.MetricCacheMisses, 1)
	}
	return nodes, ok
}

// Add stores the node count for hash at depth.
func (c *Cache) Add(hash uint64, depth int, nodes uint64) {
	c.entries.Add(cacheKey{hash: hash, depth: depth}, nodes)
}

// Len returns the number of entries held.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Hits returns the number of successful lookups.
func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of failed lookups.
func (c *Cache) Misses() int64 {
	return c.misses.Load()
}

// Report publishes the current size to the collector.
func (c *Cache) Report() {
	c.collector.SetGauge(stats.MetricCacheSize, int64(c.Len()))
}
