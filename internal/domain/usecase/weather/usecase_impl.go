package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/cache"
	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/gateway/queue"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
)

// ErrInvalidQuery indicates the query specification resolves to neither a city name
// nor a complete coordinate pair.
var ErrInvalidQuery = errors.New("query requires a city or a complete lat/lon pair")

type weatherUseCase struct {
	queueName    string
	cacheTTL     time.Duration
	weatherCache cache.WeatherCache
	apiGateway   api.WeatherGateway
	dbGateway    db.WeatherQueryGateway
	queueSender  queue.Sender
}

func NewWeatherUseCase(queueName string, cacheTTL time.Duration, weatherCache cache.WeatherCache, apiGateway api.WeatherGateway, dbGateway db.WeatherQueryGateway, queueSender queue.Sender) UseCase {
	return &weatherUseCase{
		queueName:    queueName,
		cacheTTL:     cacheTTL,
		weatherCache: weatherCache,
		apiGateway:   apiGateway,
		dbGateway:    dbGateway,
		queueSender:  queueSender,
	}
}

// Lookup orchestrates one weather query: exactly one cache read, at most one provider
// call, at most one cache write, exactly one best-effort history upsert. No retries
// and no de-duplication of concurrent identical queries.
func (uc *weatherUseCase) Lookup(ctx context.Context, params model.WeatherQueryParams, userID string) (*model.WeatherData, error) {
	if !params.Usable() {
		return nil, ErrInvalidQuery
	}

	cacheKey := params.CacheKey()

	data, hit, err := uc.weatherCache.Get(ctx, cacheKey)
	if err != nil {
		// A broken cache store degrades to a miss; it never fails the lookup
		log.Warnf("Failed to read weather cache for key %s: %v", cacheKey, err)
		hit = false
	}

	if !hit {
		data, err = uc.fetch(ctx, params)
		if err != nil {
			// Propagate without touching cache or history
			return nil, err
		}

		if err := uc.weatherCache.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			// The caller already has a valid result; a cache write failure only
			// costs the next query a provider call
			log.Warnf("Failed to cache weather for key %s: %v", cacheKey, err)
		}
	}

	uc.recordHistory(cacheKey, userID, data)

	return data, nil
}

// fetch translates the query specification into the matching provider call.
func (uc *weatherUseCase) fetch(ctx context.Context, params model.WeatherQueryParams) (*model.WeatherData, error) {
	if params.City != "" {
		return uc.apiGateway.CurrentByCity(ctx, params.City, params.Country)
	}
	return uc.apiGateway.CurrentByCoords(ctx, *params.Lat, *params.Lon)
}

// recordHistory upserts the history row for the cache key. Persistence errors are
// logged and discarded: a history failure never fails a lookup.
func (uc *weatherUseCase) recordHistory(cacheKey string, userID string, data *model.WeatherData) {
	_, err := uc.dbGateway.Upsert(entity.WeatherQuery{
		UserID:      userID,
		City:        data.City,
		Country:     data.Country,
		Lat:         data.Lat,
		Lon:         data.Lon,
		Temperature: data.Temperature,
		Description: data.Description,
		Humidity:    data.Humidity,
		Pressure:    data.Pressure,
		WindSpeed:   data.WindSpeed,
		WindDeg:     data.WindDeg,
		Visibility:  data.Visibility,
		FeelsLike:   data.FeelsLike,
		Icon:        data.Icon,
		CacheKey:    cacheKey,
		QueriedAt:   time.Now(),
	})
	if err != nil {
		log.Warnf("Failed to record weather query history for key %s: %v", cacheKey, err)
	}
}

// History returns a paginated list of weather query records
func (uc *weatherUseCase) History(page int, size int, userID string) (*model.Page[entity.WeatherQuery], error) {
	queries, totalElements, err := uc.fetchHistoryAndCountInParallel(page, size, userID)
	if err != nil {
		return nil, err
	}

	return model.NewPage(queries, page, size, totalElements), nil
}

// fetchHistoryAndCountInParallel fetches rows and count in parallel for pagination
func (uc *weatherUseCase) fetchHistoryAndCountInParallel(page int, size int, userID string) ([]entity.WeatherQuery, int64, error) {
	var wg sync.WaitGroup
	var queries []entity.WeatherQuery
	var totalElements int64
	var listErr, countErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		queries, listErr = uc.dbGateway.FindAll(page, size, userID)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		totalElements, countErr = uc.dbGateway.CountAll(userID)
	}()

	wg.Wait()

	if listErr != nil {
		return nil, 0, fmt.Errorf("failed to list weather history: %w", listErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count weather history: %w", countErr)
	}

	return queries, totalElements, nil
}

// Stats returns per-location query counts
func (uc *weatherUseCase) Stats() ([]model.CityQueryCount, error) {
	counts, err := uc.dbGateway.CountsByLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to load weather query stats: %w", err)
	}
	return counts, nil
}

// RefreshAll enqueues a refresh message for every cache key known to the history
func (uc *weatherUseCase) RefreshAll(ctx context.Context, requestID string) (int, error) {
	rows, err := uc.dbGateway.FindAllCacheKeys()
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate cache keys for refresh: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	messages := make([]queue.BatchMessage, len(rows))
	for i, row := range rows {
		messages[i] = queue.BatchMessage{
			MessageID: fmt.Sprintf("refresh-%s-%d", requestID, i),
			Body:      refreshMessageForRow(requestID, row),
		}
	}

	result, err := uc.queueSender.SendMessageBatch(ctx, uc.queueName, messages)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue refresh batch: %w", err)
	}

	if len(result.Failed) > 0 {
		log.Warnf("Failed to enqueue %d of %d refresh messages (request %s)", len(result.Failed), len(rows), requestID)
	}
	log.Infof("Enqueued %d weather refresh messages (request %s)", len(result.Successful), requestID)

	return len(result.Successful), nil
}

// refreshMessageForRow rebuilds the query specification from a history row.
func refreshMessageForRow(requestID string, row entity.WeatherQuery) model.RefreshMessage {
	params := model.WeatherQueryParams{
		City:    row.City,
		Country: row.Country,
	}
	if row.City == "" {
		lat, lon := row.Lat, row.Lon
		params.Lat, params.Lon = &lat, &lon
	}

	return model.RefreshMessage{
		RequestID: requestID,
		CacheKey:  row.CacheKey,
		UserID:    row.UserID,
		Params:    params,
		Requested: time.Now(),
	}
}

// Refresh force-fetches one key and re-populates cache and history. Unlike Lookup it
// bypasses the cache read: the point is to renew the entry.
func (uc *weatherUseCase) Refresh(ctx context.Context, message model.RefreshMessage) error {
	if !message.Params.Usable() {
		return ErrInvalidQuery
	}

	data, err := uc.fetch(ctx, message.Params)
	if err != nil {
		return fmt.Errorf("failed to refresh weather for key %s: %w", message.CacheKey, err)
	}

	cacheKey := message.CacheKey
	if cacheKey == "" {
		cacheKey = message.Params.CacheKey()
	}

	if err := uc.weatherCache.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
		return fmt.Errorf("failed to cache refreshed weather for key %s: %w", cacheKey, err)
	}

	uc.recordHistory(cacheKey, message.UserID, data)

	return nil
}

// PruneHistory deletes query records older than the retention window.
func (uc *weatherUseCase) PruneHistory(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	deleted, err := uc.dbGateway.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune query history: %w", err)
	}
	return deleted, nil
}
