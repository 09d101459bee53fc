package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxInvert(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{
			name:   "lower values score higher",
			values: []float64{100, 200, 300},
			want:   []float64{100, 50, 0},
		},
		{
			name:   "flat series is neutral",
			values: []float64{250, 250, 250},
			want:   []float64{50, 50, 50},
		},
		{
			name:   "near-flat series is neutral",
			values: []float64{250, 250.005, 250.001},
			want:   []float64{50, 50, 50},
		},
		{
			name:   "single value is neutral",
			values: []float64{400},
			want:   []float64{50},
		},
		{
			name:   "empty",
			values: nil,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMaxInvert(tt.values)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestTargetDistance(t *testing.T) {
	got := TargetDistance([]float64{22, 7, 37, 22 + 7.5, -100}, 22, 15)

	assert.InDelta(t, 100.0, got[0], 1e-9) // at the ideal
	assert.InDelta(t, 0.0, got[1], 1e-9)   // exactly tolerance below
	assert.InDelta(t, 0.0, got[2], 1e-9)   // exactly tolerance above
	assert.InDelta(t, 50.0, got[3], 1e-9)  // halfway out
	assert.InDelta(t, 0.0, got[4], 1e-9)   // far out clamps to zero
}

func TestWeatherScoresPenalty(t *testing.T) {
	temps := []float64{22, 22, 22}
	precips := []float64{0, 5, 10}

	got := WeatherScores(temps, precips, 22, 15)

	assert.InDelta(t, 100.0, got[0], 1e-9) // no rain, no penalty
	assert.InDelta(t, 90.0, got[1], 1e-9)  // half the max precip, half the penalty
	assert.InDelta(t, 80.0, got[2], 1e-9)  // wettest week takes the full 20
}

func TestWeatherScoresDrySeries(t *testing.T) {
	got := WeatherScores([]float64{22, 12}, []float64{0, 0}, 22, 15)
	assert.InDelta(t, 100.0, got[0], 1e-9)
	assert.InDelta(t, 100*(1-10.0/15.0), got[1], 1e-9)
}

func TestWeatherScoresClipsAtZero(t *testing.T) {
	// Temperature already scores 0; rain cannot push it negative.
	got := WeatherScores([]float64{50, 50}, []float64{10, 0}, 22, 15)
	assert.InDelta(t, 0.0, got[0], 1e-9)
	assert.InDelta(t, 0.0, got[1], 1e-9)
}
