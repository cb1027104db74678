package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Likhithpsdas17/weather-forecast/internal/weather"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API base used for the current
// weather and 5-day forecast endpoints.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherClient talks to the three OpenWeatherMap endpoints the dashboard
// consumes: current weather by name, current weather by coordinates, and the
// 5-day/3-hour forecast by coordinates. All requests use metric units.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherClient(client *http.Client, apiKey, baseURL string) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// Configured reports whether an API key is present. Callers must not issue
// requests when it is false.
func (c *OpenWeatherClient) Configured() bool {
	return c.apiKey != ""
}

// CurrentByName resolves a free-text city name via the current-weather
// endpoint. A 404 surfaces as an *APIError with that status.
func (c *OpenWeatherClient) CurrentByName(ctx context.Context, city string) (weather.CurrentConditions, error) {
	if c.apiKey == "" {
		return weather.CurrentConditions{}, ErrMissingAPIKey
	}

	values := c.baseValues()
	values.Set("q", city)

	return c.fetchCurrent(ctx, values)
}

// CurrentByCoordinates fetches current conditions for a coordinate pair.
func (c *OpenWeatherClient) CurrentByCoordinates(ctx context.Context, lat, lon float64) (weather.CurrentConditions, error) {
	if c.apiKey == "" {
		return weather.CurrentConditions{}, ErrMissingAPIKey
	}

	values := c.baseValues()
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))

	return c.fetchCurrent(ctx, values)
}

// Forecast fetches the 5-day/3-hour forecast list for a coordinate pair.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]weather.ForecastEntry, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := c.baseValues()
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/forecast?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Weather []struct {
				Icon        string `json:"icon"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		e := weather.ForecastEntry{
			Timestamp: item.Dt,
			TempC:     item.Main.Temp,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			e.Icon = item.Weather[0].Icon
			e.Description = item.Weather[0].Description
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (c *OpenWeatherClient) baseValues() url.Values {
	values := url.Values{}
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	return values
}

func (c *OpenWeatherClient) fetchCurrent(ctx context.Context, values url.Values) (weather.CurrentConditions, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	cur := weather.CurrentConditions{
		City:       payload.Name,
		Coord:      weather.Coordinates{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		TempC:      payload.Main.Temp,
		FeelsLikeC: payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
		Pressure:   payload.Main.Pressure,
		WindSpeed:  payload.Wind.Speed,
		Sunrise:    payload.Sys.Sunrise,
		Sunset:     payload.Sys.Sunset,
	}
	if len(payload.Weather) > 0 {
		cur.Condition = payload.Weather[0].Main
		cur.Description = payload.Weather[0].Description
		cur.Icon = payload.Weather[0].Icon
	}

	return cur, nil
}
