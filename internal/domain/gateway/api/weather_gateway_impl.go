package api

import (
	"context"
	"fmt"
	gohttp "net/http"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/model/external"
	"weather-api/pkg/http"
	"weather-api/pkg/log"
	"weather-api/pkg/util/numberutils"
)

// weatherGatewayImpl implements the WeatherGateway interface against an
// OpenWeather-compatible current-conditions endpoint.
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
}

// NewWeatherGateway creates a new WeatherGateway with an HTTP client for the given
// provider base URL. The API key is attached to every request and never logged.
func NewWeatherGateway(baseURL string, apiKey string, clientOptions http.ClientOptions) WeatherGateway {
	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseURL, clientOptions),
		apiKey:     apiKey,
	}
}

// CurrentByCity fetches current conditions for a city name with an optional country code
func (w *weatherGatewayImpl) CurrentByCity(ctx context.Context, city string, country string) (*model.WeatherData, error) {
	q := city
	if country != "" {
		q = city + "," + country
	}
	return w.fetch(ctx, map[string]string{"q": q})
}

// CurrentByCoords fetches current conditions for a latitude/longitude pair
func (w *weatherGatewayImpl) CurrentByCoords(ctx context.Context, lat float64, lon float64) (*model.WeatherData, error) {
	return w.fetch(ctx, map[string]string{
		"lat": numberutils.FormatFloat(lat),
		"lon": numberutils.FormatFloat(lon),
	})
}

// fetch executes one provider request with the given location params and normalizes
// the response. Provider failures are classified by status; no retries at this layer.
func (w *weatherGatewayImpl) fetch(ctx context.Context, locationParams map[string]string) (*model.WeatherData, error) {
	queryParams := map[string]string{
		"appid": w.apiKey,
		"units": "metric",
	}
	for key, value := range locationParams {
		queryParams[key] = value
	}

	successResp := &external.CurrentWeatherResponse{}
	errorResp := &external.APIErrorResponse{}

	_, _, statusCode, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/data/2.5/weather").
		WithQueryParams(queryParams).
		WithSuccessResp(successResp).
		WithErrorResp(errorResp).
		Execute()

	if err != nil {
		// Location params contain no secret; the API key never reaches the log.
		log.Warnf("Weather provider fetch failed for %v: status=%d err=%v", locationParams, statusCode, err)
		return nil, classify(statusCode, errorResp, err)
	}

	return normalize(successResp), nil
}

// normalize flattens the provider's nested payload (coord, main, weather[0], wind,
// sys, visibility, name) into the canonical flat weather record.
func normalize(response *external.CurrentWeatherResponse) *model.WeatherData {
	data := &model.WeatherData{
		City:        response.Name,
		Country:     response.Sys.Country,
		Lat:         response.Coord.Lat,
		Lon:         response.Coord.Lon,
		Temperature: response.Main.Temp,
		Humidity:    response.Main.Humidity,
		Pressure:    response.Main.Pressure,
		WindSpeed:   response.Wind.Speed,
		WindDeg:     response.Wind.Deg,
		Visibility:  response.Visibility,
		FeelsLike:   response.Main.FeelsLike,
	}

	if len(response.Weather) > 0 {
		data.Description = response.Weather[0].Description
		data.Icon = response.Weather[0].Icon
	}

	return data
}

// classify maps a provider failure to its error class.
func classify(statusCode int, errorResp *external.APIErrorResponse, err error) error {
	switch statusCode {
	case gohttp.StatusNotFound:
		return ErrCityNotFound
	case gohttp.StatusUnauthorized:
		return ErrInvalidAPIKey
	}
	if errorResp != nil && errorResp.Message != "" {
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, errorResp.Message)
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
