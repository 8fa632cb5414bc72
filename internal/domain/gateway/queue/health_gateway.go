package queue

import "weather-api/internal/domain/model"

// HealthGateway reports the health of the message queue.
type HealthGateway interface {
	Health() model.ComponentHealthStatus
}
