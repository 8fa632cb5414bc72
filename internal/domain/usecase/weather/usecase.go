package weather

import (
	"context"
	"time"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

type UseCase interface {
	// Lookup resolves a weather query for the requesting user: cache check,
	// provider fetch on miss, cache populate, best-effort history upsert.
	Lookup(ctx context.Context, params model.WeatherQueryParams, userID string) (*model.WeatherData, error)

	// History returns a paginated list of weather query records, optionally
	// filtered to one user.
	History(page int, size int, userID string) (*model.Page[entity.WeatherQuery], error)

	// Stats returns per-location query counts.
	Stats() ([]model.CityQueryCount, error)

	// RefreshAll enqueues an asynchronous cache refresh for every known cache key
	// and returns the number of enqueued keys.
	RefreshAll(ctx context.Context, requestID string) (int, error)

	// Refresh force-fetches one cache key from the provider and re-populates the
	// cache and history (used by the queue processor).
	Refresh(ctx context.Context, message model.RefreshMessage) error

	// PruneHistory removes query records older than the retention window and
	// returns the number of deleted rows.
	PruneHistory(olderThan time.Duration) (int64, error)
}
