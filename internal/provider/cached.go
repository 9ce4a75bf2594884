package provider

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/bataanroutes/route-backend-go/internal/models"
	"github.com/bataanroutes/route-backend-go/internal/observability"
)

// DefaultCacheSize matches the upstream quota budget: road geometry for a
// fixed pair is static within a session, so entries never expire by time
// and are evicted only by capacity.
const DefaultCacheSize = 256

// cacheKeyDecimals rounds keys to ~1 m so nearly identical requests share
// an entry instead of fragmenting the cache
const cacheKeyDecimals = 5

// CachedProvider memoizes an inner RouteProvider in a bounded LRU.
// Concurrent requests for the same key are coalesced into a single
// upstream call; errors are never cached.
type CachedProvider struct {
	inner   RouteProvider
	cache   *lru.Cache[string, models.RoutePolyline]
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewCachedProvider wraps inner with an LRU of the given capacity
func NewCachedProvider(inner RouteProvider, size int, metrics *observability.Metrics) (*CachedProvider, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, models.RoutePolyline](size)
	if err != nil {
		return nil, fmt.Errorf("creating route cache: %w", err)
	}
	return &CachedProvider{inner: inner, cache: cache, metrics: metrics}, nil
}

// GetRoute returns a cached polyline when available, otherwise delegates
// to the inner provider and stores the result
func (c *CachedProvider) GetRoute(ctx context.Context, start, end models.Coordinate) (models.RoutePolyline, error) {
	key := cacheKey(start, end)

	if route, ok := c.cache.Get(key); ok {
		c.metrics.CacheHits.Inc()
		return route, nil
	}
	c.metrics.CacheMisses.Inc()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have filled the entry while this one
		// was waiting on the flight group.
		if route, ok := c.cache.Get(key); ok {
			return route, nil
		}
		route, err := c.inner.GetRoute(ctx, start, end)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, route)
		return route, nil
	})
	if err != nil {
		return models.RoutePolyline{}, err
	}
	return v.(models.RoutePolyline), nil
}

// Len reports the number of cached routes
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}

func cacheKey(start, end models.Coordinate) string {
	return fmt.Sprintf("%.*f,%.*f|%.*f,%.*f",
		cacheKeyDecimals, start.Lat, cacheKeyDecimals, start.Lng,
		cacheKeyDecimals, end.Lat, cacheKeyDecimals, end.Lng)
}
