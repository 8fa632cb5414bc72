package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkghttp "weather-api/pkg/http"
)

const londonPayload = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 802, "main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
	"main": {"temp": 18.5, "feels_like": 18.1, "pressure": 1012, "humidity": 72},
	"visibility": 10000,
	"wind": {"speed": 4.6, "deg": 250},
	"sys": {"country": "GB"},
	"name": "London"
}`

func newTestGateway(serverURL string) WeatherGateway {
	return NewWeatherGateway(serverURL, "test-key", pkghttp.ClientOptions{})
}

// TestCurrentByCity_Success verifies request shape and payload normalization.
func TestCurrentByCity_Success(t *testing.T) {
	var gotQuery, gotAppID, gotUnits, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAppID = r.URL.Query().Get("appid")
		gotUnits = r.URL.Query().Get("units")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonPayload))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL)

	got, err := gateway.CurrentByCity(context.Background(), "London", "GB")
	if err != nil {
		t.Fatalf("CurrentByCity() error = %v, want nil", err)
	}

	if gotPath != "/data/2.5/weather" {
		t.Errorf("request path = %q, want /data/2.5/weather", gotPath)
	}
	if gotQuery != "London,GB" {
		t.Errorf("q param = %q, want London,GB", gotQuery)
	}
	if gotAppID != "test-key" {
		t.Errorf("appid param = %q, want test-key", gotAppID)
	}
	if gotUnits != "metric" {
		t.Errorf("units param = %q, want metric", gotUnits)
	}

	if got.City != "London" || got.Country != "GB" {
		t.Errorf("location = %s/%s, want London/GB", got.City, got.Country)
	}
	if got.Temperature != 18.5 || got.FeelsLike != 18.1 {
		t.Errorf("temperature = %v feels_like = %v, want 18.5/18.1", got.Temperature, got.FeelsLike)
	}
	if got.Description != "scattered clouds" || got.Icon != "03d" {
		t.Errorf("conditions = %q/%q, want scattered clouds/03d", got.Description, got.Icon)
	}
	if got.Humidity != 72 || got.Pressure != 1012 || got.Visibility != 10000 {
		t.Errorf("main fields = %d/%d/%d, want 72/1012/10000", got.Humidity, got.Pressure, got.Visibility)
	}
	if got.WindSpeed != 4.6 || got.WindDeg != 250 {
		t.Errorf("wind = %v/%d, want 4.6/250", got.WindSpeed, got.WindDeg)
	}
	if got.Lat != 51.5085 || got.Lon != -0.1257 {
		t.Errorf("coords = %v/%v, want 51.5085/-0.1257", got.Lat, got.Lon)
	}
}

// TestCurrentByCity_WithoutCountry verifies the q param carries only the city.
func TestCurrentByCity_WithoutCountry(t *testing.T) {
	var gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonPayload))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL)

	if _, err := gateway.CurrentByCity(context.Background(), "London", ""); err != nil {
		t.Fatalf("CurrentByCity() error = %v, want nil", err)
	}
	if gotQuery != "London" {
		t.Errorf("q param = %q, want London", gotQuery)
	}
}

// TestCurrentByCoords_Success verifies lat/lon are sent in minimal decimal form.
func TestCurrentByCoords_Success(t *testing.T) {
	var gotLat, gotLon string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("lat")
		gotLon = r.URL.Query().Get("lon")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonPayload))
	}))
	defer server.Close()

	gateway := newTestGateway(server.URL)

	got, err := gateway.CurrentByCoords(context.Background(), 51.51, -0.13)
	if err != nil {
		t.Fatalf("CurrentByCoords() error = %v, want nil", err)
	}
	if gotLat != "51.51" || gotLon != "-0.13" {
		t.Errorf("coords params = %q/%q, want 51.51/-0.13", gotLat, gotLon)
	}
	if got.City != "London" {
		t.Errorf("City = %q, want London", got.City)
	}
}

// TestFetch_ErrorClassification verifies the status-to-error mapping: 404 is a
// missing city, 401 a rejected key, everything else a provider failure.
func TestFetch_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"cod": "404", "message": "city not found"}`,
			wantErr: ErrCityNotFound,
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"cod": 401, "message": "Invalid API key"}`,
			wantErr: ErrInvalidAPIKey,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"cod": 500, "message": "something broke"}`,
			wantErr: ErrProviderUnavailable,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"cod": 429, "message": "quota exceeded"}`,
			wantErr: ErrProviderUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			gateway := newTestGateway(server.URL)

			_, err := gateway.CurrentByCity(context.Background(), "London", "GB")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CurrentByCity() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestFetch_TransportFailure verifies unreachable providers classify as unavailable.
func TestFetch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	gateway := newTestGateway(server.URL)

	_, err := gateway.CurrentByCity(context.Background(), "London", "GB")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("CurrentByCity() error = %v, want ErrProviderUnavailable", err)
	}
}
