package cache

import (
	"context"
	"time"

	"weather-api/internal/domain/model"
	"weather-api/pkg/redis"
)

// redisWeatherCache stores weather records in Redis under the "weather" cache name.
type redisWeatherCache struct {
	cache *redis.Cache
}

var _ WeatherCache = (*redisWeatherCache)(nil)

// NewRedisWeatherCache creates a Redis-backed weather cache.
func NewRedisWeatherCache(client *redis.Client) WeatherCache {
	return &redisWeatherCache{
		cache: redis.NewCache(client, redis.NewCacheOptions().WithCacheName("weather")),
	}
}

func (c *redisWeatherCache) Get(ctx context.Context, key string) (*model.WeatherData, bool, error) {
	var data model.WeatherData
	found, err := c.cache.Get(ctx, key, &data)
	if err != nil || !found {
		return nil, false, err
	}
	return &data, true, nil
}

func (c *redisWeatherCache) Set(ctx context.Context, key string, value *model.WeatherData, ttl time.Duration) error {
	return c.cache.SetWithTTL(ctx, key, value, ttl)
}
