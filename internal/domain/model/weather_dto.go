package model

import (
	"strings"
	"time"

	"weather-api/pkg/util/numberutils"
)

// WeatherQueryParams is the inbound query specification: either a city name with an
// optional country code, or a complete latitude/longitude pair.
type WeatherQueryParams struct {
	City    string   `json:"city,omitempty"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Usable reports whether the params resolve to a valid query: a city name, or both
// coordinates.
func (p WeatherQueryParams) Usable() bool {
	return p.City != "" || (p.Lat != nil && p.Lon != nil)
}

// CacheKey derives the deterministic, case-insensitive cache key for the query.
// City form: "weather:<city>[:<country>]", lowercased. Coordinate form:
// "weather:<lat>:<lon>" using the minimal decimal string form.
func (p WeatherQueryParams) CacheKey() string {
	if p.City != "" {
		key := "weather:" + strings.ToLower(p.City)
		if p.Country != "" {
			key += ":" + strings.ToLower(p.Country)
		}
		return key
	}
	return "weather:" + numberutils.FormatFloat(*p.Lat) + ":" + numberutils.FormatFloat(*p.Lon)
}

// WeatherData is the normalized flat weather record returned to callers and stored
// in the cache.
type WeatherData struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"windSpeed"`
	WindDeg     int     `json:"windDeg"`
	Visibility  int     `json:"visibility"`
	FeelsLike   float64 `json:"feelsLike"`
	Icon        string  `json:"icon"`
}

// CityQueryCount is one row of the per-location query statistics.
type CityQueryCount struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// RefreshMessage is the queue payload for an asynchronous cache refresh of one key.
type RefreshMessage struct {
	RequestID string             `json:"requestId"`
	CacheKey  string             `json:"cacheKey"`
	UserID    string             `json:"userId"`
	Params    WeatherQueryParams `json:"params"`
	Requested time.Time          `json:"requested"`
}
