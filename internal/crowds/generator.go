package crowds

import (
	"math"
	"time"

	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/forecast"
)

// Daily crowd index model. The shape mirrors the rate model with smaller
// holiday and summer bumps and no noise term, so the series is fully
// deterministic.
const (
	baseLevel         = 50.0
	seasonalAmplitude = 30.0
	holidayAmplitude  = 20.0
	summerAmplitude   = 15.0

	holidayPeakDay = 360.0
	holidayWidth   = 200.0
	summerPeakDay  = 180.0
	summerWidth    = 300.0
	daysPerYear    = 365.0
)

// Generator produces a synthetic daily crowd index in [0, 100]. Months
// with major scheduled events are lifted by the event crowd multiplier.
type Generator struct {
	events *events.Service
}

// NewGenerator builds a crowd generator. evts may be nil, in which case
// no event uplift is applied.
func NewGenerator(evts *events.Service) *Generator {
	return &Generator{events: evts}
}

// Daily returns one crowd index per day from start through end inclusive.
func (g *Generator) Daily(city string, start, end time.Time) []forecast.DailyPoint {
	start = dayOf(start)
	end = dayOf(end)
	if end.Before(start) {
		return nil
	}

	multipliers := make(map[time.Month]float64)

	var out []forecast.DailyPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		level := baseIndex(d) * g.monthMultiplier(city, d, multipliers)
		level = math.Min(math.Max(level, 0), 100)
		out = append(out, forecast.DailyPoint{Date: d, Value: level})
	}
	return out
}

func baseIndex(d time.Time) float64 {
	doy := float64(d.YearDay())

	seasonal := baseLevel + seasonalAmplitude*math.Sin(2*math.Pi*doy/daysPerYear)
	holiday := holidayAmplitude * math.Exp(-math.Pow(doy-holidayPeakDay, 2)/holidayWidth)
	summer := summerAmplitude * math.Exp(-math.Pow(doy-summerPeakDay, 2)/summerWidth)

	return seasonal + holiday + summer
}

func (g *Generator) monthMultiplier(city string, d time.Time, cache map[time.Month]float64) float64 {
	if g.events == nil {
		return 1.0
	}
	if m, ok := cache[d.Month()]; ok {
		return m
	}
	assessment := g.events.ForTrip(city, d, d.AddDate(0, 0, 7))
	cache[d.Month()] = assessment.CrowdMultiplier
	return assessment.CrowdMultiplier
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
