package api

import (
	"context"
	"errors"

	"weather-api/internal/domain/model"
)

// Provider fetch failures are classified for logging and diagnostics; the boundary
// layer maps all three to a single bad-request class.
var (
	// ErrCityNotFound indicates the provider does not know the requested location.
	ErrCityNotFound = errors.New("city not found")
	// ErrInvalidAPIKey indicates the provider rejected the application's API key.
	ErrInvalidAPIKey = errors.New("invalid provider api key")
	// ErrProviderUnavailable covers transport failures and any other non-2xx response.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// WeatherGateway defines the interface for current-conditions lookups against the
// external weather provider.
type WeatherGateway interface {
	// CurrentByCity fetches current conditions for a city name with an optional
	// ISO country code.
	CurrentByCity(ctx context.Context, city string, country string) (*model.WeatherData, error)

	// CurrentByCoords fetches current conditions for a latitude/longitude pair.
	CurrentByCoords(ctx context.Context, lat float64, lon float64) (*model.WeatherData, error)
}
