package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("Extreme Heat Alert!", "Alert"))
	assert.False(t, HasAny("Weather data loaded successfully!", "Alert"))
	assert.False(t, HasAny("anything"))
}

func TestTitleWords(t *testing.T) {
	assert.Equal(t, "Scattered Clouds", TitleWords("scattered clouds"))
	assert.Equal(t, "Light Rain", TitleWords("light rain"))
	assert.Equal(t, "Thunderstorm", TitleWords("thunderstorm"))
	assert.Equal(t, "", TitleWords(""))
	assert.Equal(t, "A  B", TitleWords("a  b"))
}
