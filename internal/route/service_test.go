package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrail/tripcast/pkg/config"
)

func testOptimizer() *Optimizer {
	return NewOptimizer(config.RouteConfig{ExhaustiveLimit: 6})
}

// lineStop places stops along a single parallel so path distances are
// easy to reason about.
func lineStop(name string, lon float64) Stop {
	return Stop{City: name, Lat: 45.0, Lon: lon}
}

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		delta                  float64
	}{
		{
			name: "paris to london",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 51.5074, lon2: -0.1278,
			wantKm: 344, delta: 2,
		},
		{
			name: "barcelona to rome",
			lat1: 41.3851, lon1: 2.1734,
			lat2: 41.9028, lon2: 12.4964,
			wantKm: 857, delta: 5,
		},
		{
			name: "same point",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 48.8566, lon2: 2.3522,
			wantKm: 0, delta: 1e-9,
		},
		{
			name: "across the equator",
			lat1: 1.3521, lon1: 103.8198, // Singapore
			lat2: -33.8688, lon2: 151.2093, // Sydney
			wantKm: 6300, delta: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantKm, got, tt.delta)
			// Distance is symmetric.
			assert.InDelta(t, got, Haversine(tt.lat2, tt.lon2, tt.lat1, tt.lon1), 1e-9)
		})
	}
}

func TestOptimizeSingleStop(t *testing.T) {
	o := testOptimizer()

	ordered, method := o.Optimize([]Stop{lineStop("A", 0)})
	assert.Len(t, ordered, 1)
	assert.Equal(t, MethodManual, method)

	ordered, method = o.Optimize(nil)
	assert.Empty(t, ordered)
	assert.Equal(t, MethodManual, method)
}

func TestOptimizeExhaustiveOrdersLine(t *testing.T) {
	o := testOptimizer()

	// Shuffled stops along a line: the minimal open path visits them in
	// coordinate order, and the lexicographically first of the two
	// directions wins.
	stops := []Stop{
		lineStop("C", 2),
		lineStop("A", 0),
		lineStop("D", 3),
		lineStop("B", 1),
	}

	ordered, method := o.Optimize(stops)
	require.Equal(t, MethodExhaustive, method)

	names := make([]string, len(ordered))
	for i, s := range ordered {
		names[i] = s.City
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)

	// The optimized path is no longer than the input order's.
	assert.LessOrEqual(t, PathDistance(ordered), PathDistance(stops))
}

func TestOptimizeExhaustiveBeatsInputOrder(t *testing.T) {
	o := testOptimizer()

	stops := []Stop{
		{City: "Paris", Lat: 48.8566, Lon: 2.3522},
		{City: "Rome", Lat: 41.9028, Lon: 12.4964},
		{City: "London", Lat: 51.5074, Lon: -0.1278},
		{City: "Barcelona", Lat: 41.3851, Lon: 2.1734},
	}

	ordered, method := o.Optimize(stops)
	require.Equal(t, MethodExhaustive, method)
	assert.Less(t, PathDistance(ordered), PathDistance(stops))
	assert.ElementsMatch(t, stops, ordered)
}

func TestOptimizeGreedyBeyondLimit(t *testing.T) {
	o := testOptimizer()

	// Seven stops exceed the limit of six. The first stop leads, and from
	// a left-end start the nearest-neighbor walk visits the line in order.
	stops := []Stop{
		lineStop("A", 0),
		lineStop("E", 4),
		lineStop("C", 2),
		lineStop("G", 6),
		lineStop("B", 1),
		lineStop("F", 5),
		lineStop("D", 3),
	}

	ordered, method := o.Optimize(stops)
	require.Equal(t, MethodGreedy, method)
	assert.Equal(t, "A", ordered[0].City)

	names := make([]string, len(ordered))
	for i, s := range ordered {
		names[i] = s.City
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, names)
}

func TestOptimizeLimitBoundary(t *testing.T) {
	o := testOptimizer()

	six := make([]Stop, 6)
	for i := range six {
		six[i] = lineStop(string(rune('A'+i)), float64(i))
	}
	_, method := o.Optimize(six)
	assert.Equal(t, MethodExhaustive, method)

	seven := append(six, lineStop("H", 7))
	_, method = o.Optimize(seven)
	assert.Equal(t, MethodGreedy, method)
}

func TestBuildRoute(t *testing.T) {
	stops := []Stop{
		{City: "Paris", Lat: 48.8566, Lon: 2.3522},
		{City: "London", Lat: 51.5074, Lon: -0.1278},
		{City: "Barcelona", Lat: 41.3851, Lon: 2.1734},
	}

	r := BuildRoute(stops, MethodManual)
	require.Len(t, r.Legs, 2)

	assert.Equal(t, "Paris", r.Legs[0].From)
	assert.Equal(t, "London", r.Legs[0].To)
	assert.InDelta(t, 344, r.Legs[0].DistanceKm, 2)
	assert.Equal(t, MethodManual, r.Method)
	assert.Equal(t, []string{"Paris", "London", "Barcelona"}, r.Cities())

	// Total reflects the full-precision sum, legs are display-rounded.
	sum := Haversine(48.8566, 2.3522, 51.5074, -0.1278) +
		Haversine(51.5074, -0.1278, 41.3851, 2.1734)
	assert.InDelta(t, sum, r.TotalKm, 0.05+1e-9)
}

func TestBuildRouteSingleStop(t *testing.T) {
	r := BuildRoute([]Stop{lineStop("A", 0)}, MethodManual)
	assert.Empty(t, r.Legs)
	assert.Zero(t, r.TotalKm)
}
