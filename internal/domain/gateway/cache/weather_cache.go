package cache

import (
	"context"
	"time"

	"weather-api/internal/domain/model"
)

// WeatherCache is the cache store consumed by the weather lookup orchestrator.
// Absence of a key is a valid state (cache miss), never an error.
type WeatherCache interface {
	// Get returns the cached weather record for the key if present and not expired.
	Get(ctx context.Context, key string) (*model.WeatherData, bool, error)

	// Set stores the weather record under the key with the given time-to-live.
	Set(ctx context.Context, key string, value *model.WeatherData, ttl time.Duration) error
}
