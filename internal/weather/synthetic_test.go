package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrail/tripcast/internal/forecast"
)

func TestClimateForKnownCities(t *testing.T) {
	tests := []struct {
		name       string
		lat, lon   float64
		wantBase   float64
		wantPrecip string
	}{
		{"barcelona", 41.3874, 2.1686, 17.5, precipMediterranean},
		{"paris", 48.8566, 2.3522, 12.5, precipUniform},
		{"tokyo", 35.6762, 139.6503, 16.5, precipTropical},
		{"london", 51.5074, -0.1278, 11.5, precipUniform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := climateFor(tt.lat, tt.lon)
			assert.Equal(t, tt.wantBase, cl.baseTemp)
			assert.Equal(t, tt.wantPrecip, cl.precip)
			assert.Equal(t, 200.0, cl.phase)
		})
	}
}

func TestClimateForGenericLatitude(t *testing.T) {
	north := climateFor(40.7128, -74.0060) // New York
	assert.InDelta(t, 25-40.7128*0.4, north.baseTemp, 1e-9)
	assert.Equal(t, 80.0, north.phase)
	assert.Equal(t, precipUniform, north.precip)

	south := climateFor(-33.8688, 151.2093) // Sydney
	assert.InDelta(t, 25-33.8688*0.4, south.baseTemp, 1e-9)
	assert.Equal(t, 260.0, south.phase)
}

func TestSyntheticDailyRangeAndDeterminism(t *testing.T) {
	s := NewSynthetic()
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	got := s.Daily(48.8566, 2.3522, start, end)

	require.Len(t, got, 28)
	assert.Equal(t, start, got[0].Date)
	assert.Equal(t, end, got[27].Date)
	assert.Equal(t, got, s.Daily(48.8566, 2.3522, start, end))

	for _, d := range got {
		assert.GreaterOrEqual(t, d.Precipitation, 0.0)
	}
}

func TestSyntheticSeasonalContrast(t *testing.T) {
	s := NewSynthetic()

	// The Paris pattern peaks in mid October and bottoms out in April.
	warm := s.Daily(48.8566, 2.3522,
		time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC))
	cool := s.Daily(48.8566, 2.3522,
		time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC))

	assert.Greater(t, meanTemp(warm)-meanTemp(cool), 10.0)
}

func TestSyntheticEmptyWhenEndBeforeStart(t *testing.T) {
	s := NewSynthetic()
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, s.Daily(0, 0, start, start.AddDate(0, 0, -1)))
}

func meanTemp(days []forecast.WeatherDay) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range days {
		sum += d.Temperature
	}
	return sum / float64(len(days))
}
