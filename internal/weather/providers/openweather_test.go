package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentBody = `{
	"coord": {"lat": 48.8534, "lon": 2.3488},
	"name": "Paris",
	"main": {"temp": 21.46, "feels_like": 20.92, "humidity": 65, "pressure": 1013},
	"wind": {"speed": 4.26},
	"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
	"sys": {"sunrise": 1704091500, "sunset": 1704128520}
}`

const forecastBody = `{
	"list": [
		{"dt": 1704103200, "main": {"temp": 18.2, "humidity": 70}, "wind": {"speed": 2.5},
		 "weather": [{"icon": "01d", "description": "clear sky"}]},
		{"dt": 1704114000, "main": {"temp": 20.4, "humidity": 64}, "wind": {"speed": 3.1},
		 "weather": [{"icon": "02d", "description": "few clouds"}]}
	]
}`

func testClient(baseURL string) *OpenWeatherClient {
	return NewOpenWeatherClient(&http.Client{Timeout: 5 * time.Second}, "test-key", baseURL)
}

func TestCurrentByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	cur, err := testClient(srv.URL).CurrentByName(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, "Paris", cur.City)
	assert.Equal(t, 48.8534, cur.Coord.Lat)
	assert.Equal(t, 2.3488, cur.Coord.Lon)
	assert.Equal(t, 21.46, cur.TempC)
	assert.Equal(t, 20.92, cur.FeelsLikeC)
	assert.Equal(t, 65.0, cur.Humidity)
	assert.Equal(t, 1013.0, cur.Pressure)
	assert.Equal(t, 4.26, cur.WindSpeed)
	assert.Equal(t, "Clouds", cur.Condition)
	assert.Equal(t, "scattered clouds", cur.Description)
	assert.Equal(t, "03d", cur.Icon)
	assert.Equal(t, int64(1704091500), cur.Sunrise)
	assert.Equal(t, int64(1704128520), cur.Sunset)
}

func TestCurrentByCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	cur, err := testClient(srv.URL).CurrentByCoordinates(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, "Paris", cur.City)
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	entries, err := testClient(srv.URL).Forecast(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(1704103200), entries[0].Timestamp)
	assert.Equal(t, 18.2, entries[0].TempC)
	assert.Equal(t, 70.0, entries[0].Humidity)
	assert.Equal(t, 2.5, entries[0].WindSpeed)
	assert.Equal(t, "01d", entries[0].Icon)
	assert.Equal(t, "clear sky", entries[0].Description)
}

func TestMissingAPIKey(t *testing.T) {
	c := NewOpenWeatherClient(&http.Client{}, "", "http://unreachable.invalid")

	_, err := c.CurrentByName(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	_, err = c.CurrentByCoordinates(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	_, err = c.Forecast(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, c.Configured())
}

func TestNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CurrentByName(context.Background(), "Nowhereville")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "city not found", apiErr.Message)
}

func TestErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message field", http.StatusInternalServerError, `{"message":"server error"}`, "server error"},
		{"error field", http.StatusUnauthorized, `{"error":"invalid api key"}`, "invalid api key"},
		{"raw json fallback", http.StatusBadRequest, `{"cod":400}`, `{"cod":400}`},
		{"status line fallback", http.StatusBadGateway, "not json at all", "502 Bad Gateway"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).CurrentByName(context.Background(), "Paris")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
		})
	}
}

func TestTransportError(t *testing.T) {
	// Nothing listening: the error is a transport failure, not an APIError.
	c := testClient("http://127.0.0.1:1")

	_, err := c.CurrentByName(context.Background(), "Paris")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
