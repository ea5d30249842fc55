package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quantbox/quantbox/log"
)

// DefaultCacheDuration keeps fetched series for a full trading day to stay
// inside provider rate limits
const DefaultCacheDuration = time.Hour * 24

type cacheEntry struct {
	bars    []Bar
	fetched time.Time
}

// CachedProvider wraps another Provider with an in-memory TTL cache keyed by
// symbol and range
type CachedProvider struct {
	provider Provider
	ttl      time.Duration
	mtx      sync.Mutex
	entries  map[string]cacheEntry
	now      func() time.Time
}

// NewCachedProvider wraps p with a TTL cache; a non-positive ttl falls back to
// DefaultCacheDuration
func NewCachedProvider(p Provider, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheDuration
	}
	return &CachedProvider{
		provider: p,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// Fetch returns the cached series when fresh, otherwise defers to the wrapped
// provider and stores the result
func (c *CachedProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	key := fmt.Sprintf("%s_%s_%s", symbol, start.Format(DateFormat), end.Format(DateFormat))

	c.mtx.Lock()
	entry, ok := c.entries[key]
	c.mtx.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		log.Debugf(log.DataMgr, "Using cached data for %s", symbol)
		return entry.bars, nil
	}

	bars, err := c.provider.Fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	c.mtx.Lock()
	c.entries[key] = cacheEntry{bars: bars, fetched: c.now()}
	c.mtx.Unlock()
	return bars, nil
}

// Ping defers to the wrapped provider
func (c *CachedProvider) Ping(ctx context.Context) error {
	return c.provider.Ping(ctx)
}

// Clear empties the cache
func (c *CachedProvider) Clear() {
	c.mtx.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mtx.Unlock()
}
