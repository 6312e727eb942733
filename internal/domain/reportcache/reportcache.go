// Package reportcache memoizes scoring reports for repeated subjects.
//
// Scoring is pure and deterministic, so a cached report is always
// identical to a freshly computed one. The cache is an optimization
// only; disabling it (max size 0) never changes observable behavior.
package reportcache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/subjectscore/internal/domain/types"
)

// Cache stores reports keyed by the raw subject line.
type Cache interface {
	// Get returns the cached report for subject, if present.
	Get(ctx context.Context, subject string) (types.Report, bool)

	// Put records a report for subject. A full cache evicts its
	// oldest entry first.
	Put(ctx context.Context, subject string, r types.Report)

	// Size returns the current number of cached reports.
	Size() int64
}

const defaultMaxSize = 10_000

// inMemoryCache implements Cache with a bounded map and FIFO
// eviction. A max size of 0 or less disables caching entirely.
type inMemoryCache struct {
	mu      sync.RWMutex
	reports map[string]types.Report
	order   []string // insertion order, oldest first
	maxSize int
	size    atomic.Int64
}

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithMaxSize bounds the number of cached reports. Zero or negative
// disables the cache.
func WithMaxSize(maxSize int) Option {
	return func(c *inMemoryCache) {
		c.maxSize = maxSize
	}
}

// NewInMemoryCache creates a bounded in-memory report cache.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.reports = make(map[string]types.Report)
	return c
}

// Get returns the cached report for subject, if present.
func (c *inMemoryCache) Get(_ context.Context, subject string) (types.Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.reports[subject]
	return r, ok
}

// Put records a report for subject, evicting the oldest entry when
// the cache is full.
func (c *inMemoryCache) Put(_ context.Context, subject string, r types.Report) {
	if c.maxSize <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.reports[subject]; exists {
		return
	}

	if len(c.reports) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.reports, oldest)
		c.size.Add(-1)
	}

	c.reports[subject] = r
	c.order = append(c.order, subject)
	c.size.Add(1)
}

// Size returns the current number of cached reports.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
