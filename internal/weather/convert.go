package weather

import "math"

// ToUnit converts a Kelvin temperature to the given display unit, rounded to
// one decimal place. An unrecognized unit returns the Kelvin value unchanged
// (apart from rounding).
func ToUnit(kelvin float64, unit Unit) float64 {
	switch unit {
	case UnitCelsius:
		return round1(kelvin - 273.15)
	case UnitFahrenheit:
		return round1((kelvin-273.15)*9/5 + 32)
	}
	return round1(kelvin)
}

// FromCelsius converts an already-metric temperature to the display unit,
// rounded to one decimal place.
func FromCelsius(celsius float64, unit Unit) float64 {
	if unit == UnitFahrenheit {
		return round1(celsius*9/5 + 32)
	}
	return round1(celsius)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
