package weather

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/skytrail/tripcast/internal/forecast"
)

const (
	daysPerYear  = 365.0
	tempNoiseStd = 2.0
)

// Synthetic generates daily weather from seasonal climate patterns. The
// series is deterministic per coordinate so repeated assembly of the same
// history window sees identical data.
type Synthetic struct{}

func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// Daily returns one weather observation per day from start through end
// inclusive.
func (s *Synthetic) Daily(lat, lon float64, start, end time.Time) []forecast.WeatherDay {
	start = dayOf(start)
	end = dayOf(end)
	if end.Before(start) {
		return nil
	}

	cl := climateFor(lat, lon)
	rng := rand.New(rand.NewSource(coordSeed(lat, lon)))

	var out []forecast.WeatherDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		doy := float64(d.YearDay())

		seasonal := cl.amplitude * math.Sin(2*math.Pi*(doy-cl.phase)/daysPerYear)
		temp := cl.baseTemp + seasonal + rng.NormFloat64()*tempNoiseStd

		out = append(out, forecast.WeatherDay{
			Date:          d,
			Temperature:   temp,
			Precipitation: precipFor(cl.precip, doy, rng),
		})
	}
	return out
}

func precipFor(pattern string, doy float64, rng *rand.Rand) float64 {
	var base, scale float64
	switch pattern {
	case precipMediterranean:
		// Dry summers, wet winters.
		base = 2 + 5*math.Cos(2*math.Pi*(doy-15)/daysPerYear)
		scale = 1.5
	case precipTropical:
		// Wet summers, dry winters.
		base = 3 + 6*math.Sin(2*math.Pi*(doy-80)/daysPerYear)
		scale = 2.5
	default:
		base = 2 + 3*math.Sin(2*math.Pi*doy/daysPerYear)
		scale = 2
	}
	return math.Max(0, base+scale*rng.ExpFloat64())
}

func coordSeed(lat, lon float64) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "weather|%.4f|%.4f", lat, lon)
	return int64(h.Sum64())
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
