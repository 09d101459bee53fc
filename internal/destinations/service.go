package destinations

import (
	"fmt"
	"strings"

	h3 "github.com/uber/h3-go/v4"
)

// CellResolution is the H3 resolution for spatial cache keys. Resolution 5
// cells span roughly 8 km, wide enough that small coordinate variations of
// the same city land in the same cell.
const CellResolution = 5

// UnresolvableLocationError reports a city the catalog has no coordinates
// for and no explicit coordinates were supplied.
type UnresolvableLocationError struct {
	City string
}

func (e *UnresolvableLocationError) Error() string {
	return fmt.Sprintf("coordinates not found for %q", e.City)
}

// Service resolves city names to coordinates and serves the catalog.
type Service struct {
	byName map[string]Destination
}

// NewService creates a destination service over the static catalog.
func NewService() *Service {
	byName := make(map[string]Destination, len(Catalog))
	for _, d := range Catalog {
		byName[strings.ToLower(d.Name)] = d
	}
	return &Service{byName: byName}
}

// List returns the full destination catalog.
func (s *Service) List() []Destination {
	return Catalog
}

// Resolve looks up a city by name, case-insensitively.
func (s *Service) Resolve(city string) (*Location, error) {
	d, ok := s.byName[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return nil, &UnresolvableLocationError{City: city}
	}
	return s.locationFor(d.Name, d.Lat, d.Lon), nil
}

// ResolveCoords resolves a city, preferring explicit coordinates when both
// are supplied. Unknown cities with explicit coordinates still resolve.
func (s *Service) ResolveCoords(city string, lat, lon *float64) (*Location, error) {
	if lat != nil && lon != nil {
		return s.locationFor(city, *lat, *lon), nil
	}
	return s.Resolve(city)
}

func (s *Service) locationFor(city string, lat, lon float64) *Location {
	return &Location{
		City: city,
		Lat:  lat,
		Lon:  lon,
		Cell: CellKey(lat, lon),
	}
}

// CellKey returns the H3 cell index string for a coordinate pair. Falls back
// to a rounded lat/lon key if the index cannot be computed.
func CellKey(lat, lon float64) string {
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), CellResolution)
	if err != nil {
		return fmt.Sprintf("%.2f:%.2f", lat, lon)
	}
	return cell.String()
}
