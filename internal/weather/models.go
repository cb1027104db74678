package weather

// Unit is the temperature display unit chosen by the user.
type Unit string

const (
	UnitCelsius    Unit = "C"
	UnitFahrenheit Unit = "F"
)

// Symbol returns the glyph rendered next to temperatures.
func (u Unit) Symbol() string {
	if u == UnitFahrenheit {
		return "°F"
	}
	return "°C"
}

// Toggle flips between Celsius and Fahrenheit.
func (u Unit) Toggle() Unit {
	if u == UnitCelsius {
		return UnitFahrenheit
	}
	return UnitCelsius
}

// Coordinates is a latitude/longitude pair as returned by the weather API.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentConditions is the normalized current-weather observation.
// Temperatures are in Celsius because all upstream requests use metric units.
type CurrentConditions struct {
	City        string      `json:"city"`
	Coord       Coordinates `json:"coord"`
	TempC       float64     `json:"tempC"`
	FeelsLikeC  float64     `json:"feelsLikeC"`
	Humidity    float64     `json:"humidityPercent"`
	Pressure    float64     `json:"pressureHpa"`
	WindSpeed   float64     `json:"windSpeedMs"`
	Condition   string      `json:"condition"`   // primary category, e.g. "Clear"
	Description string      `json:"description"` // e.g. "scattered clouds"
	Icon        string      `json:"icon"`        // icon id, e.g. "04d"
	Sunrise     int64       `json:"sunrise"`     // epoch seconds
	Sunset      int64       `json:"sunset"`      // epoch seconds
}

// ForecastEntry is a single 3-hour forecast sample.
type ForecastEntry struct {
	Timestamp   int64   `json:"dt"`
	TempC       float64 `json:"tempC"`
	Humidity    float64 `json:"humidityPercent"`
	WindSpeed   float64 `json:"windSpeedMs"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Snapshot is the last successfully fetched combined current+forecast result.
// It is retained so a unit toggle can re-render without refetching.
type Snapshot struct {
	City     string            `json:"city"`
	Current  CurrentConditions `json:"current"`
	Forecast []ForecastEntry   `json:"forecast"`
}
