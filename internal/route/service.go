package route

import (
	"math"

	"github.com/skytrail/tripcast/pkg/config"
)

// earthRadiusKm is the Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Optimizer orders city stops to minimize the total path distance.
type Optimizer struct {
	exhaustiveLimit int
}

// NewOptimizer creates a route optimizer
func NewOptimizer(cfg config.RouteConfig) *Optimizer {
	limit := cfg.ExhaustiveLimit
	if limit <= 0 {
		limit = 6
	}
	return &Optimizer{exhaustiveLimit: limit}
}

// Optimize returns the stops reordered to minimize the sum of
// consecutive-leg distances (an open path, not a closed tour), plus the
// search method used. Up to the exhaustive limit every permutation is
// tried and the first minimal one wins; beyond it a greedy
// nearest-neighbor walk from the first stop approximates the answer.
func (o *Optimizer) Optimize(stops []Stop) ([]Stop, string) {
	if len(stops) <= 1 {
		return stops, MethodManual
	}
	if len(stops) <= o.exhaustiveLimit {
		return exhaustive(stops), MethodExhaustive
	}
	return greedy(stops), MethodGreedy
}

// BuildRoute assembles the reported route for an ordered stop sequence.
// Leg distances round to one decimal; the total is rounded once over the
// full-precision sum.
func BuildRoute(stops []Stop, method string) *Route {
	legs := make([]Leg, 0, max(len(stops)-1, 0))
	total := 0.0
	for i := 1; i < len(stops); i++ {
		d := Haversine(stops[i-1].Lat, stops[i-1].Lon, stops[i].Lat, stops[i].Lon)
		total += d
		legs = append(legs, Leg{
			From:       stops[i-1].City,
			To:         stops[i].City,
			DistanceKm: round1(d),
		})
	}
	return &Route{
		Stops:   stops,
		Legs:    legs,
		TotalKm: round1(total),
		Method:  method,
	}
}

// Haversine returns the great-circle distance between two coordinates in
// kilometers, at full precision.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// PathDistance sums the consecutive-leg distances of an ordered path.
func PathDistance(stops []Stop) float64 {
	total := 0.0
	for i := 1; i < len(stops); i++ {
		total += Haversine(stops[i-1].Lat, stops[i-1].Lon, stops[i].Lat, stops[i].Lon)
	}
	return total
}

// exhaustive tries every permutation in lexicographic index order and
// keeps the first one achieving the minimal path distance.
func exhaustive(stops []Stop) []Stop {
	n := len(stops)
	dist := pairwise(stops)

	best := make([]int, n)
	for i := range best {
		best[i] = i
	}
	bestDist := math.MaxFloat64

	perm := make([]int, 0, n)
	used := make([]bool, n)

	var walk func(pathDist float64)
	walk = func(pathDist float64) {
		if pathDist >= bestDist {
			return
		}
		if len(perm) == n {
			bestDist = pathDist
			copy(best, perm)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			next := pathDist
			if len(perm) > 0 {
				next += dist[perm[len(perm)-1]][i]
			}
			used[i] = true
			perm = append(perm, i)
			walk(next)
			perm = perm[:len(perm)-1]
			used[i] = false
		}
	}
	walk(0)

	return pick(stops, best)
}

// greedy walks from the first stop, always visiting the nearest unvisited
// stop next. Ties break on the lower input index.
func greedy(stops []Stop) []Stop {
	n := len(stops)
	dist := pairwise(stops)

	order := make([]int, 0, n)
	visited := make([]bool, n)
	order = append(order, 0)
	visited[0] = true

	for len(order) < n {
		cur := order[len(order)-1]
		next := -1
		nearest := math.MaxFloat64
		for i := 0; i < n; i++ {
			if !visited[i] && dist[cur][i] < nearest {
				nearest = dist[cur][i]
				next = i
			}
		}
		order = append(order, next)
		visited[next] = true
	}

	return pick(stops, order)
}

func pairwise(stops []Stop) [][]float64 {
	n := len(stops)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = Haversine(stops[i].Lat, stops[i].Lon, stops[j].Lat, stops[j].Lon)
			}
		}
	}
	return dist
}

func pick(stops []Stop, order []int) []Stop {
	out := make([]Stop, len(order))
	for i, idx := range order {
		out[i] = stops[idx]
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
