package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

type GormWeatherQueryGateway struct {
	DB *gorm.DB
}

var _ WeatherQueryGateway = (*GormWeatherQueryGateway)(nil)

func NewGormWeatherQueryGateway(db *gorm.DB) *GormWeatherQueryGateway {
	return &GormWeatherQueryGateway{DB: db}
}

func (gateway *GormWeatherQueryGateway) FindAll(page int, size int, userID string) ([]entity.WeatherQuery, error) {
	var queries []entity.WeatherQuery

	query := gateway.DB.Order("queried_at desc").Offset(page * size).Limit(size)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Find(&queries).Error; err != nil {
		return nil, fmt.Errorf("failed to list weather queries: %w", err)
	}
	return queries, nil
}

func (gateway *GormWeatherQueryGateway) CountAll(userID string) (int64, error) {
	var count int64

	query := gateway.DB.Model(&entity.WeatherQuery{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count weather queries: %w", err)
	}
	return count, nil
}

func (gateway *GormWeatherQueryGateway) FindByCacheKey(cacheKey string) (*entity.WeatherQuery, error) {
	var query entity.WeatherQuery
	err := gateway.DB.Where("cache_key = ?", cacheKey).First(&query).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find weather query by cache key: %w", err)
	}
	return &query, nil
}

func (gateway *GormWeatherQueryGateway) FindAllCacheKeys() ([]entity.WeatherQuery, error) {
	var queries []entity.WeatherQuery
	err := gateway.DB.
		Select("id", "user_id", "city", "country", "lat", "lon", "cache_key").
		Order("queried_at desc").
		Find(&queries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list weather query cache keys: %w", err)
	}
	return queries, nil
}

// Upsert implements create-if-absent-else-update keyed by the unique cache key.
// The last writer overwrites the weather fields; the original user_id is retained
// from creation.
func (gateway *GormWeatherQueryGateway) Upsert(query entity.WeatherQuery) (*entity.WeatherQuery, error) {
	existing, err := gateway.FindByCacheKey(query.CacheKey)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if query.ID == "" {
			query.ID = uuid.New().String()
		}
		if err := gateway.DB.Create(&query).Error; err != nil {
			return nil, fmt.Errorf("failed to create weather query: %w", err)
		}
		return &query, nil
	}

	updates := map[string]any{
		"city":        query.City,
		"country":     query.Country,
		"lat":         query.Lat,
		"lon":         query.Lon,
		"temperature": query.Temperature,
		"description": query.Description,
		"humidity":    query.Humidity,
		"pressure":    query.Pressure,
		"wind_speed":  query.WindSpeed,
		"wind_deg":    query.WindDeg,
		"visibility":  query.Visibility,
		"feels_like":  query.FeelsLike,
		"icon":        query.Icon,
		"queried_at":  query.QueriedAt,
	}

	err = gateway.DB.Model(&entity.WeatherQuery{}).
		Where("cache_key = ?", query.CacheKey).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update weather query: %w", err)
	}

	return gateway.FindByCacheKey(query.CacheKey)
}

func (gateway *GormWeatherQueryGateway) CountsByLocation() ([]model.CityQueryCount, error) {
	var counts []model.CityQueryCount
	err := gateway.DB.Model(&entity.WeatherQuery{}).
		Select("city", "country", "count(*) as count").
		Group("city, country").
		Order("count desc").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate weather query counts: %w", err)
	}
	return counts, nil
}

func (gateway *GormWeatherQueryGateway) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := gateway.DB.Where("queried_at < ?", cutoff).Delete(&entity.WeatherQuery{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune weather queries: %w", result.Error)
	}
	return result.RowsAffected, nil
}
