package entity

import "time"

// WeatherQuery is the history record of the latest weather snapshot for a cache key.
// One row exists per cache key: the row is created on the first occurrence of the key
// (fixing the owning UserID) and its weather fields and QueriedAt are overwritten on
// every repeat, regardless of which user issued the repeat query.
type WeatherQuery struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"not null;index"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"windSpeed"`
	WindDeg     int       `json:"windDeg"`
	Visibility  int       `json:"visibility"`
	FeelsLike   float64   `json:"feelsLike"`
	Icon        string    `json:"icon"`
	CacheKey    string    `json:"cacheKey" gorm:"uniqueIndex;not null"`
	QueriedAt   time.Time `json:"queriedAt"`
}

// TableName returns the database table name for the WeatherQuery entity.
func (WeatherQuery) TableName() string {
	return "weather_queries"
}
