package cache

import (
	"context"
	"sync"
	"time"

	"weather-api/internal/domain/model"
)

// memoryEntry stores one cached record with its expiration timestamp.
type memoryEntry struct {
	value     model.WeatherData
	expiresAt time.Time
}

// MemoryWeatherCache is an in-process weather cache with per-entry expiration.
// Expired entries are removed on access.
type MemoryWeatherCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

var _ WeatherCache = (*MemoryWeatherCache)(nil)

// NewMemoryWeatherCache creates a new in-process weather cache.
func NewMemoryWeatherCache() *MemoryWeatherCache {
	return &MemoryWeatherCache{
		data: make(map[string]memoryEntry),
	}
}

func (c *MemoryWeatherCache) Get(ctx context.Context, key string) (*model.WeatherData, bool, error) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	value := entry.value
	return &value, true, nil
}

func (c *MemoryWeatherCache) Set(ctx context.Context, key string, value *model.WeatherData, ttl time.Duration) error {
	c.mu.Lock()
	c.data[key] = memoryEntry{
		value:     *value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
