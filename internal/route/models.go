package route

// Search methods reported on a route.
const (
	MethodManual     = "manual"
	MethodExhaustive = "exhaustive"
	MethodGreedy     = "greedy_nearest_neighbor"
)

// Stop is one city on a route.
type Stop struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Leg is one segment between consecutive stops. DistanceKm is rounded to
// one decimal for presentation.
type Leg struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

// Route describes an ordered set of stops with per-leg and total
// distances and the method that produced the ordering.
type Route struct {
	Stops   []Stop  `json:"stops"`
	Legs    []Leg   `json:"legs"`
	TotalKm float64 `json:"total_km"`
	Method  string  `json:"method"`
}

// Cities returns the ordered city names.
func (r *Route) Cities() []string {
	names := make([]string, len(r.Stops))
	for i, s := range r.Stops {
		names[i] = s.City
	}
	return names
}
