package queries

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/JaimeStill/sage/internal/pipeline"
)

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Size     int     `json:"size"`
	Capacity int     `json:"capacity"`
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRate  float64 `json:"hit_rate"`
}

// cache wraps an expiring LRU of completed results keyed by normalized query
// text, adding hit and miss counters for the stats endpoint.
type cache struct {
	lru      *expirable.LRU[string, *pipeline.Result]
	capacity int

	mu     sync.Mutex
	hits   int64
	misses int64
}

func newCache(size int, ttl time.Duration) *cache {
	return &cache{
		lru:      expirable.NewLRU[string, *pipeline.Result](size, nil, ttl),
		capacity: size,
	}
}

// cacheKey normalizes query text so trivial whitespace and case differences
// share an entry. Distinct sessions never share entries: cached answers may
// embed session context.
func cacheKey(sessionID, query string) string {
	return sessionID + "\x00" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (c *cache) get(key string) (*pipeline.Result, bool) {
	res, ok := c.lru.Get(key)

	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	return res, ok
}

func (c *cache) add(key string, res *pipeline.Result) {
	c.lru.Add(key, res)
}

func (c *cache) stats() CacheStats {
	c.mu.Lock()
	hits, misses := c.hits, c.misses
	c.mu.Unlock()

	stats := CacheStats{
		Size:     c.lru.Len(),
		Capacity: c.capacity,
		Hits:     hits,
		Misses:   misses,
	}

	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}

	return stats
}
