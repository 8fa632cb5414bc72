package cache

import (
	"context"
	"time"

	"weather-api/internal/domain/model"
	"weather-api/pkg/redis"
)

// HealthGateway reports the health of the cache store.
type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

type redisHealthGateway struct {
	client *redis.Client
}

var _ HealthGateway = (*redisHealthGateway)(nil)

// NewRedisHealthGateway creates a cache health gateway backed by a Redis ping.
func NewRedisHealthGateway(client *redis.Client) HealthGateway {
	return &redisHealthGateway{client: client}
}

func (gateway *redisHealthGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := gateway.client.Ping(ctx); err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"message": err.Error(),
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message": string(model.StatusUp),
		},
	}
}
