package view

import "strings"

// Theme classes mirror the page's background states.
const (
	ThemeDefault      = "bg-default"
	ThemeClear        = "bg-clear"
	ThemeClouds       = "bg-clouds"
	ThemeRain         = "bg-rain"
	ThemeSnow         = "bg-snow"
	ThemeThunderstorm = "bg-thunderstorm"
	ThemeMist         = "bg-mist"
)

// SelectTheme maps a weather condition's primary category to a theme class.
// The nine low-visibility categories share one class; anything unrecognized
// (including the literal reset value "default") maps to the default theme.
func SelectTheme(conditionMain string) string {
	switch strings.ToLower(conditionMain) {
	case "clear":
		return ThemeClear
	case "clouds":
		return ThemeClouds
	case "rain":
		return ThemeRain
	case "snow":
		return ThemeSnow
	case "thunderstorm":
		return ThemeThunderstorm
	case "mist", "smoke", "haze", "dust", "fog", "sand", "ash", "squall", "tornado":
		return ThemeMist
	default:
		return ThemeDefault
	}
}
