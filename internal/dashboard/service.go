package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Likhithpsdas17/weather-forecast/internal/store"
	"github.com/Likhithpsdas17/weather-forecast/internal/view"
	"github.com/Likhithpsdas17/weather-forecast/internal/weather"
	"github.com/Likhithpsdas17/weather-forecast/internal/weather/providers"
)

// User-visible message texts.
const (
	msgMissingAPIKey    = "API key is missing. Please set your OpenWeatherMap API key."
	msgResolving        = "Resolving city name..."
	msgFetching         = "Fetching weather data..."
	msgLoaded           = "Weather data loaded successfully!"
	msgResolveFailed    = "Failed to resolve city: Check your API Key and internet connection."
	msgFetchFailed      = "Failed to load weather: Check your API Key and internet connection."
	msgLocationDenied   = "Unable to get your location. Please allow location access."
	locationDisplayName = "Your Location"
)

// WeatherAPI abstracts the upstream weather endpoints the dashboard consumes.
type WeatherAPI interface {
	Configured() bool
	CurrentByName(ctx context.Context, city string) (weather.CurrentConditions, error)
	CurrentByCoordinates(ctx context.Context, lat, lon float64) (weather.CurrentConditions, error)
	Forecast(ctx context.Context, lat, lon float64) ([]weather.ForecastEntry, error)
}

// Service orchestrates geocode resolution, the paired weather fetch, history
// writes, and rendering of the dashboard state.
type Service struct {
	api     WeatherAPI
	history store.HistoryStore
	state   *state

	loc *time.Location
	now func() time.Time
}

func NewService(api WeatherAPI, history store.HistoryStore) *Service {
	return &Service{
		api:     api,
		history: history,
		state:   newState(),
		loc:     time.Local,
		now:     time.Now,
	}
}

// SearchCity resolves a city name to coordinates via the weather-by-name
// endpoint and, on success, runs the coordinate fetch with the resolved name.
// The caller must reject blank input before calling.
func (s *Service) SearchCity(ctx context.Context, city string) view.Dashboard {
	city = strings.TrimSpace(city)

	if !s.api.Configured() {
		s.state.setMessage(&view.Message{Kind: view.KindError, Text: msgMissingAPIKey})
		return s.Dashboard()
	}

	s.state.setMessage(&view.Message{Kind: view.KindInfo, Text: msgResolving})

	cur, err := s.api.CurrentByName(ctx, city)
	if err != nil {
		s.state.setMessage(resolveErrorMessage(city, err))
		return s.Dashboard()
	}

	return s.FetchByCoordinates(ctx, cur.Coord.Lat, cur.Coord.Lon, cur.City)
}

// Locate runs the coordinate fetch for a browser-supplied position under the
// fixed "Your Location" display name.
func (s *Service) Locate(ctx context.Context, lat, lon float64) view.Dashboard {
	return s.FetchByCoordinates(ctx, lat, lon, locationDisplayName)
}

// LocateDenied surfaces a geolocation permission or support failure.
func (s *Service) LocateDenied() view.Dashboard {
	s.state.setMessage(&view.Message{Kind: view.KindError, Text: msgLocationDenied})
	return s.Dashboard()
}

// FetchByCoordinates issues the current-conditions and forecast requests
// concurrently and waits for both. Either failing fails the whole operation:
// the weather card is hidden and the theme resets. On success the snapshot is
// stored, the theme updates from the condition's primary category, and the
// display name is appended to the search history.
func (s *Service) FetchByCoordinates(ctx context.Context, lat, lon float64, displayName string) view.Dashboard {
	if !s.api.Configured() {
		s.state.setMessage(&view.Message{Kind: view.KindError, Text: msgMissingAPIKey})
		return s.Dashboard()
	}

	s.state.setMessage(&view.Message{Kind: view.KindInfo, Text: msgFetching})
	gen := s.state.nextGen()

	var (
		wg      sync.WaitGroup
		cur     weather.CurrentConditions
		curErr  error
		entries []weather.ForecastEntry
		fcErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cur, curErr = s.api.CurrentByCoordinates(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		entries, fcErr = s.api.Forecast(ctx, lat, lon)
	}()
	wg.Wait()

	if curErr != nil || fcErr != nil {
		log.Printf("weather fetch failed for %q (%.4f, %.4f): current=%v forecast=%v", displayName, lat, lon, curErr, fcErr)
		s.state.applyFailure(gen, fetchErrorMessage(curErr, fcErr))
		return s.Dashboard()
	}

	snap := &weather.Snapshot{City: displayName, Current: cur, Forecast: entries}
	if s.state.applySuccess(gen, snap, view.SelectTheme(cur.Condition)) {
		s.applyAlertFor(snap)

		if _, err := s.history.Add(displayName); err != nil {
			log.Printf("history write failed for %q: %v", displayName, err)
		}
		s.state.setMessage(&view.Message{Kind: view.KindSuccess, Text: msgLoaded})
	}

	return s.Dashboard()
}

// ToggleUnit flips the display unit and re-renders from the stored snapshot
// without refetching.
func (s *Service) ToggleUnit() view.Dashboard {
	unit, snap := s.state.toggleUnit()
	if snap != nil {
		s.applyAlertForUnit(snap, unit)
	}
	return s.Dashboard()
}

// Refresh refetches the currently displayed location. A nil snapshot is a
// no-op; used by the periodic refresh job.
func (s *Service) Refresh(ctx context.Context) error {
	snap := s.state.currentSnapshot()
	if snap == nil {
		return nil
	}

	d := s.FetchByCoordinates(ctx, snap.Current.Coord.Lat, snap.Current.Coord.Lon, snap.City)
	if d.Message != nil && d.Message.Kind == view.KindError {
		return errors.New(d.Message.Text)
	}
	return nil
}

// Dashboard renders the complete page state from the stored snapshot.
func (s *Service) Dashboard() view.Dashboard {
	snap, unit, msg, theme, visible := s.state.view()

	history, err := s.history.Load()
	if err != nil {
		log.Printf("history load failed: %v", err)
	}
	if history == nil {
		history = []string{}
	}

	d := view.Dashboard{
		Message: msg,
		Theme:   theme,
		Visible: visible,
		History: history,
	}

	if snap != nil {
		cv, _ := view.RenderCurrent(snap.Current, snap.City, unit, s.now(), s.loc)
		fv := view.RenderForecast(snap.Forecast, unit, s.loc)
		d.Current = &cv
		d.Forecast = &fv
	}

	return d
}

// applyAlertFor evaluates the extreme-temperature alert for the active unit.
func (s *Service) applyAlertFor(snap *weather.Snapshot) {
	_, unit, _, _, _ := s.state.view()
	s.applyAlertForUnit(snap, unit)
}

func (s *Service) applyAlertForUnit(snap *weather.Snapshot, unit weather.Unit) {
	_, alert := view.RenderCurrent(snap.Current, snap.City, unit, s.now(), s.loc)
	if alert != nil {
		s.state.setMessage(alert)
		return
	}
	s.state.clearAlert()
}

// resolveErrorMessage classifies a geocode failure: 404 is a user-correctable
// not-found, other API statuses carry the extracted message, anything else is
// a connectivity problem.
func resolveErrorMessage(city string, err error) *view.Message {
	if errors.Is(err, providers.ErrMissingAPIKey) {
		return &view.Message{Kind: view.KindError, Text: msgMissingAPIKey}
	}

	var apiErr *providers.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			return &view.Message{
				Kind: view.KindError,
				Text: fmt.Sprintf("City %q not found. Please check the name and try again.", city),
			}
		}
		if apiErr.Message != "" {
			return &view.Message{Kind: view.KindError, Text: fmt.Sprintf("API Error %s", apiErr.Message)}
		}
		return &view.Message{Kind: view.KindError, Text: fmt.Sprintf("API Error: Status %d", apiErr.StatusCode)}
	}

	return &view.Message{Kind: view.KindError, Text: msgResolveFailed}
}

// fetchErrorMessage derives the combined failure message, preferring the
// current-conditions failure's extracted message, then the forecast's, then a
// status-coded generic.
func fetchErrorMessage(curErr, fcErr error) *view.Message {
	var curAPI, fcAPI *providers.APIError
	errors.As(curErr, &curAPI)
	errors.As(fcErr, &fcAPI)

	if curAPI == nil && fcAPI == nil {
		return &view.Message{Kind: view.KindError, Text: msgFetchFailed}
	}

	status := 0
	if curAPI != nil {
		status = curAPI.StatusCode
	} else {
		status = fcAPI.StatusCode
	}

	msg := ""
	if curAPI != nil && curAPI.Message != "" {
		msg = curAPI.Message
	} else if fcAPI != nil && fcAPI.Message != "" {
		msg = fcAPI.Message
	} else {
		msg = fmt.Sprintf("Status %d", status)
	}

	return &view.Message{
		Kind: view.KindError,
		Text: fmt.Sprintf("Failed to load weather: API Error (%d): %s", status, msg),
	}
}
