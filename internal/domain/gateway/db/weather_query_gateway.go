package db

import (
	"time"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

// WeatherQueryGateway is the persistence interface for the weather query history.
type WeatherQueryGateway interface {
	FindAll(page int, size int, userID string) ([]entity.WeatherQuery, error)
	CountAll(userID string) (int64, error)
	FindByCacheKey(cacheKey string) (*entity.WeatherQuery, error)
	FindAllCacheKeys() ([]entity.WeatherQuery, error)

	// Upsert creates the row for the query's cache key when absent, and otherwise
	// updates the mutable weather fields and the query timestamp, never the owning
	// user or the cache key.
	Upsert(query entity.WeatherQuery) (*entity.WeatherQuery, error)

	CountsByLocation() ([]model.CityQueryCount, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
