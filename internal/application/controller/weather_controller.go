package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"weather-api/internal/application/middleware"
	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/weather"
	"weather-api/pkg/log"
	"weather-api/pkg/util/numberutils"
)

type WeatherController struct {
	api            *echo.Group
	useCase        weather.UseCase
	requestTimeout time.Duration
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase, requestTimeout time.Duration) *WeatherController {
	return &WeatherController{api: api, useCase: useCase, requestTimeout: requestTimeout}
}

// InitWeatherRoutes initializes weather routes. The group is expected to carry the
// authentication middleware; stats and refresh add the role guard.
func (controller *WeatherController) InitWeatherRoutes() {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	controller.api.GET("/weather", controller.Lookup)
	controller.api.GET("/weather/history", controller.History)
	controller.api.GET("/weather/stats", controller.Stats, adminOnly)
	controller.api.POST("/weather/refresh", controller.RefreshAll, adminOnly)
}

func (controller *WeatherController) Lookup(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session"})
	}

	params, err := parseQueryParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), controller.requestTimeout)
	defer cancel()

	data, err := controller.useCase.Lookup(ctx, params, session.UserID)
	if err != nil {
		if isBadQueryError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not resolve weather for the requested location"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, data)
}

func (controller *WeatherController) History(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session"})
	}

	var page int = numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	var size int = numberutils.ToIntWithDefault(c.QueryParam("size"), 10)

	// Non-admins only ever see their own history.
	userID := session.UserID
	if session.Role == entity.RoleAdmin {
		if requested := c.QueryParam("userId"); requested != "" {
			userID = requested
		}
	}

	history, err := controller.useCase.History(page, size, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, history)
}

func (controller *WeatherController) Stats(c echo.Context) error {
	stats, err := controller.useCase.Stats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

func (controller *WeatherController) RefreshAll(c echo.Context) error {
	requestID := uuid.New().String()

	// Enqueueing can take a while on a large history; don't hold the request.
	go func() {
		enqueued, err := controller.useCase.RefreshAll(context.Background(), requestID)
		if err != nil {
			log.Errorf("Cache refresh %s failed to enqueue: %v", requestID, err)
			return
		}
		log.Infof("Cache refresh %s enqueued %d keys", requestID, enqueued)
	}()

	return c.JSON(http.StatusAccepted, map[string]string{"message": "Cache refresh scheduled", "requestId": requestID})
}

// parseQueryParams extracts and range-checks the lookup parameters. Coordinates must
// be well-formed floats within lat [-90,90] and lon [-180,180].
func parseQueryParams(c echo.Context) (model.WeatherQueryParams, error) {
	params := model.WeatherQueryParams{
		City:    c.QueryParam("city"),
		Country: c.QueryParam("country"),
	}

	if raw := c.QueryParam("lat"); raw != "" {
		lat, err := numberutils.ToFloat64WithError(raw)
		if err != nil || !numberutils.IsFloatInRange(lat, -90, 90) {
			return params, errors.New("lat must be a number between -90 and 90")
		}
		params.Lat = &lat
	}
	if raw := c.QueryParam("lon"); raw != "" {
		lon, err := numberutils.ToFloat64WithError(raw)
		if err != nil || !numberutils.IsFloatInRange(lon, -180, 180) {
			return params, errors.New("lon must be a number between -180 and 180")
		}
		params.Lon = &lon
	}
	return params, nil
}

// isBadQueryError reports whether the lookup failure is attributable to the request
// rather than this service. Provider failure classes are only distinguished in logs.
func isBadQueryError(err error) bool {
	return errors.Is(err, weather.ErrInvalidQuery) ||
		errors.Is(err, api.ErrCityNotFound) ||
		errors.Is(err, api.ErrInvalidAPIKey) ||
		errors.Is(err, api.ErrProviderUnavailable)
}
