package geoguess

import (
	"sync"
)

// pairKey is an unordered pair of country names. Names are lowercased and
// ordered so that (a, b) and (b, a) produce the same key.
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	a, b = nameKey(a), nameKey(b)
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// cacheEntry is a distance that is either computed or being computed.
// ready is closed once km and ok are final.
type cacheEntry struct {
	ready chan struct{}
	km    float64
	ok    bool
}

// CacheStats counts cache activity since creation.
type CacheStats struct {
	Hits         uint64
	Misses       uint64
	Computations uint64
	Entries      int
}

// DistanceCache memoizes pairwise country distances for the process lifetime.
//
// The mutex only guards the entry table. A miss registers an in-flight entry
// and runs the computation outside the lock; concurrent callers asking for the
// same pair wait for that entry instead of computing again, so each unordered
// pair is computed at most once. Stored values never change.
type DistanceCache struct {
	mu      sync.Mutex
	entries map[pairKey]*cacheEntry
	stats   CacheStats
	metrics *Metrics
}

// NewDistanceCache returns an empty cache.
func NewDistanceCache() *DistanceCache {
	return &DistanceCache{entries: make(map[pairKey]*cacheEntry)}
}

// GetOrCompute returns the cached distance for the unordered pair (a, b).
// On a miss it calls compute exactly once. A value reported by compute is
// stored and returned; if compute reports false nothing is stored and
// GetOrCompute reports false.
func (c *DistanceCache) GetOrCompute(a, b string, compute func() (float64, bool)) (float64, bool) {
	key := newPairKey(a, b)

	c.mu.Lock()
	if e, found := c.entries[key]; found {
		select {
		case <-e.ready:
			// Finished entries left in the table always hold a value.
			c.stats.Hits++
			c.mu.Unlock()
			c.metrics.cacheHit()
			return e.km, e.ok
		default:
		}
		c.mu.Unlock()
		<-e.ready
		c.recordWait(e.ok)
		return e.km, e.ok
	}
	e := &cacheEntry{ready: make(chan struct{})}
	c.entries[key] = e
	c.stats.Misses++
	c.stats.Computations++
	c.mu.Unlock()
	c.metrics.cacheMiss()

	defer close(e.ready)
	completed := false
	defer func() {
		if !completed || !e.ok {
			// Absent (or panicking) computations leave no trace so the pair
			// can be asked for again.
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
	}()

	e.km, e.ok = compute()
	completed = true
	if !e.ok {
		e.km = 0
	}
	return e.km, e.ok
}

// recordWait counts a caller that waited on an in-flight computation. It is
// a hit only if the computation produced a value.
func (c *DistanceCache) recordWait(ok bool) {
	c.mu.Lock()
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()
	if ok {
		c.metrics.cacheHit()
	} else {
		c.metrics.cacheMiss()
	}
}

// Peek returns the cached distance for (a, b) without computing anything.
// Pairs still being computed are reported as absent.
func (c *DistanceCache) Peek(a, b string) (float64, bool) {
	c.mu.Lock()
	e, found := c.entries[newPairKey(a, b)]
	c.mu.Unlock()
	if !found {
		return 0, false
	}
	select {
	case <-e.ready:
		return e.km, e.ok
	default:
		return 0, false
	}
}

// Len returns the number of stored or in-flight pairs.
func (c *DistanceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *DistanceCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}
