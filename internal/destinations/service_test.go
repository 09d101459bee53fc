package destinations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	service := NewService()

	tests := []struct {
		name     string
		city     string
		wantErr  bool
		wantLat  float64
		wantLon  float64
		wantCity string
	}{
		{
			name:     "known city",
			city:     "Paris",
			wantLat:  48.8566,
			wantLon:  2.3522,
			wantCity: "Paris",
		},
		{
			name:     "case insensitive",
			city:     "bArCeLoNa",
			wantLat:  41.3851,
			wantLon:  2.1734,
			wantCity: "Barcelona",
		},
		{
			name:     "surrounding whitespace",
			city:     "  tokyo ",
			wantLat:  35.6762,
			wantLon:  139.6503,
			wantCity: "Tokyo",
		},
		{
			name:    "unknown city",
			city:    "Atlantis",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := service.Resolve(tt.city)
			if tt.wantErr {
				require.Error(t, err)
				var unresolvable *UnresolvableLocationError
				assert.ErrorAs(t, err, &unresolvable)
				assert.Equal(t, tt.city, unresolvable.City)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCity, loc.City)
			assert.InDelta(t, tt.wantLat, loc.Lat, 1e-9)
			assert.InDelta(t, tt.wantLon, loc.Lon, 1e-9)
			assert.NotEmpty(t, loc.Cell)
		})
	}
}

func TestResolveCoordsPrefersExplicit(t *testing.T) {
	service := NewService()

	lat, lon := 12.34, 56.78
	loc, err := service.ResolveCoords("Nowhereville", &lat, &lon)
	require.NoError(t, err)
	assert.Equal(t, "Nowhereville", loc.City)
	assert.InDelta(t, 12.34, loc.Lat, 1e-9)
	assert.InDelta(t, 56.78, loc.Lon, 1e-9)
	assert.NotEmpty(t, loc.Cell)
}

func TestResolveCoordsFallsBackToCatalog(t *testing.T) {
	service := NewService()

	loc, err := service.ResolveCoords("Rome", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rome", loc.City)
	assert.InDelta(t, 41.9028, loc.Lat, 1e-9)

	_, err = service.ResolveCoords("Nowhereville", nil, nil)
	require.Error(t, err)
}

func TestCellKeyStableForNearbyPoints(t *testing.T) {
	// Same city queried with slightly different coordinates should share a
	// cache cell.
	a := CellKey(48.8566, 2.3522)
	b := CellKey(48.8570, 2.3530)
	assert.Equal(t, a, b)

	// Different cities must not collide.
	c := CellKey(35.6762, 139.6503)
	assert.NotEqual(t, a, c)
}

func TestCatalogWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Catalog {
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Country)
		assert.GreaterOrEqual(t, d.Lat, -90.0)
		assert.LessOrEqual(t, d.Lat, 90.0)
		assert.GreaterOrEqual(t, d.Lon, -180.0)
		assert.LessOrEqual(t, d.Lon, 180.0)
		assert.False(t, seen[d.Name], "duplicate catalog entry %s", d.Name)
		seen[d.Name] = true
	}
	assert.GreaterOrEqual(t, len(Catalog), 40)
}
