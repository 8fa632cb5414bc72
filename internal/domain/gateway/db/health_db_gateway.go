package db

import "weather-api/internal/domain/model"

// HealthDBGateway reports the health of the persistent store.
type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
