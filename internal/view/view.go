package view

import (
	"fmt"
	"time"

	"github.com/Likhithpsdas17/weather-forecast/internal/common"
	"github.com/Likhithpsdas17/weather-forecast/internal/weather"
)

// iconURLTemplate is the fixed icon CDN template parameterized by the
// API-provided icon id.
const iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// noForecastPlaceholder is shown when no full days remain after dropping the
// current one.
const noForecastPlaceholder = "No extended forecast data available."

// MessageKind selects the visual treatment of a transient message.
type MessageKind string

const (
	KindError   MessageKind = "error"
	KindAlert   MessageKind = "alert"
	KindInfo    MessageKind = "info"
	KindSuccess MessageKind = "success"
)

// Message is a transient, replaceable, user-dismissible notice.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// BearsAlert reports whether m is an extreme-temperature alert still on
// display. A fresh render clears only messages that carry one.
func (m *Message) BearsAlert() bool {
	return m != nil && common.HasAny(m.Text, "Alert")
}

// CurrentView contains the display strings for the current-conditions card.
type CurrentView struct {
	City        string `json:"city"`
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	UnitSymbol  string `json:"unitSymbol"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	Condition   string `json:"condition"`
	FeelsLike   string `json:"feelsLike"`
	IconURL     string `json:"iconUrl"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	Pressure    string `json:"pressure"`
}

// ForecastCard is one rendered day of the extended forecast.
type ForecastCard struct {
	Weekday     string `json:"weekday"`
	Date        string `json:"date"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	UnitSymbol  string `json:"unitSymbol"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
}

// ForecastView is the rendered forecast container: either cards or a
// placeholder, never both.
type ForecastView struct {
	Cards       []ForecastCard `json:"cards,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
}

// Dashboard is the complete page state handed to the UI surface.
type Dashboard struct {
	Message  *Message      `json:"message,omitempty"`
	Theme    string        `json:"theme"`
	Visible  bool          `json:"visible"`
	Current  *CurrentView  `json:"current,omitempty"`
	Forecast *ForecastView `json:"forecast,omitempty"`
	History  []string      `json:"history"`
}

// RenderCurrent projects current conditions into display strings. The
// returned Message is a heat or cold alert when the Celsius temperature
// crosses a threshold while Celsius is the active unit, nil otherwise.
// nameOverride, when non-empty, takes precedence over the API-resolved name.
func RenderCurrent(cur weather.CurrentConditions, nameOverride string, unit weather.Unit, now time.Time, loc *time.Location) (CurrentView, *Message) {
	if loc == nil {
		loc = time.Local
	}

	temp := weather.FromCelsius(cur.TempC, unit)
	// The original computes feels-like by shifting the Celsius value into
	// Kelvin and running it through the Kelvin converter. Numerically a
	// no-op versus direct conversion; kept for output parity.
	feelsLike := weather.ToUnit(cur.FeelsLikeC+273.15, unit)
	symbol := unit.Symbol()

	var alert *Message
	if unit == weather.UnitCelsius {
		if temp > 40 {
			alert = &Message{
				Kind: KindAlert,
				Text: fmt.Sprintf("Extreme Heat Alert! Temperature is %.1f%s. Stay hydrated!", temp, symbol),
			}
		} else if temp < -10 {
			alert = &Message{
				Kind: KindAlert,
				Text: fmt.Sprintf("Extreme Cold Alert! Temperature is %.1f%s. Dress warmly!", temp, symbol),
			}
		}
	}

	city := cur.City
	if nameOverride != "" {
		city = nameOverride
	}

	v := CurrentView{
		City:        city,
		Date:        now.In(loc).Format("Monday, January 2, 2006"),
		Temperature: fmt.Sprintf("%.1f", temp),
		UnitSymbol:  symbol,
		Humidity:    fmt.Sprintf("%.0f%%", cur.Humidity),
		Wind:        fmt.Sprintf("%.1f m/s", cur.WindSpeed),
		Condition:   common.TitleWords(cur.Description),
		FeelsLike:   fmt.Sprintf("%.1f%s", feelsLike, symbol),
		IconURL:     fmt.Sprintf(iconURLTemplate, cur.Icon),
		Sunrise:     time.Unix(cur.Sunrise, 0).In(loc).Format("03:04 PM"),
		Sunset:      time.Unix(cur.Sunset, 0).In(loc).Format("03:04 PM"),
		Pressure:    fmt.Sprintf("%.0f hPa", cur.Pressure),
	}

	return v, alert
}

// RenderForecast groups the 3-hour samples by calendar date, drops the
// current day, and renders up to five daily cards. With nothing left it
// renders the placeholder instead.
func RenderForecast(entries []weather.ForecastEntry, unit weather.Unit, loc *time.Location) ForecastView {
	if loc == nil {
		loc = time.Local
	}

	days := weather.UpcomingDays(weather.GroupDaily(entries, loc), 5)
	if len(days) == 0 {
		return ForecastView{Placeholder: noForecastPlaceholder}
	}

	symbol := unit.Symbol()
	cards := make([]ForecastCard, 0, len(days))
	for _, d := range days {
		temp := weather.ToUnit(d.AverageTempC()+273.15, unit)
		cards = append(cards, ForecastCard{
			Weekday:     d.Date.Format("Mon"),
			Date:        d.Date.Format("Jan 2"),
			IconURL:     fmt.Sprintf(iconURLTemplate, d.Icon),
			Description: d.Description,
			Temperature: fmt.Sprintf("%.1f", temp),
			UnitSymbol:  symbol,
			Humidity:    fmt.Sprintf("%.0f%%", d.Humidity),
			Wind:        fmt.Sprintf("%.1f m/s", d.WindSpeed),
		})
	}

	return ForecastView{Cards: cards}
}
