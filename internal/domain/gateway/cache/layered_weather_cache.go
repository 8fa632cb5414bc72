package cache

import (
	"context"
	"time"

	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
)

// layeredWeatherCache reads and writes through a distributed primary store and
// degrades to an in-process fallback when the primary is unreachable. A primary
// failure therefore behaves as a forced miss at worst and never fails a lookup.
type layeredWeatherCache struct {
	primary  WeatherCache
	fallback WeatherCache
}

var _ WeatherCache = (*layeredWeatherCache)(nil)

// NewLayeredWeatherCache creates a weather cache with a distributed primary and an
// in-process fallback.
func NewLayeredWeatherCache(primary WeatherCache, fallback WeatherCache) WeatherCache {
	return &layeredWeatherCache{
		primary:  primary,
		fallback: fallback,
	}
}

func (c *layeredWeatherCache) Get(ctx context.Context, key string) (*model.WeatherData, bool, error) {
	data, found, err := c.primary.Get(ctx, key)
	if err == nil {
		return data, found, nil
	}

	log.Warnf("Primary weather cache get failed for key %s, using in-process fallback: %v", key, err)
	return c.fallback.Get(ctx, key)
}

func (c *layeredWeatherCache) Set(ctx context.Context, key string, value *model.WeatherData, ttl time.Duration) error {
	if err := c.primary.Set(ctx, key, value, ttl); err != nil {
		log.Warnf("Primary weather cache set failed for key %s, using in-process fallback: %v", key, err)
		return c.fallback.Set(ctx, key, value, ttl)
	}
	return nil
}
