package prices

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/skytrail/tripcast/internal/forecast"
)

// Daily rate model. A yearly sine carries the seasonal swing, Gaussian
// bumps add the Christmas and summer peaks, Fridays and Saturdays carry a
// flat uplift.
const (
	basePrice         = 300.0
	seasonalAmplitude = 50.0
	holidayAmplitude  = 30.0
	summerAmplitude   = 20.0
	weekendUplift     = 15.0
	noiseStdDev       = 10.0

	holidayPeakDay  = 360.0
	holidayWidth    = 200.0
	summerPeakDay   = 180.0
	summerWidth     = 300.0
	daysPerYear     = 365.0
	floorMultiplier = 0.5
)

// Generator produces synthetic daily hotel and flight rates. Series are
// deterministic per city so repeated predictions see identical history.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Daily returns one rate per day from start through end inclusive.
func (g *Generator) Daily(city string, start, end time.Time) []forecast.DailyPoint {
	start = dayOf(start)
	end = dayOf(end)
	if end.Before(start) {
		return nil
	}

	rng := rand.New(rand.NewSource(citySeed(city)))

	var out []forecast.DailyPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		price := baseRate(d) + rng.NormFloat64()*noiseStdDev
		price = math.Max(price, basePrice*floorMultiplier)
		out = append(out, forecast.DailyPoint{Date: d, Value: price})
	}
	return out
}

func baseRate(d time.Time) float64 {
	doy := float64(d.YearDay())

	seasonal := seasonalAmplitude * math.Sin(2*math.Pi*doy/daysPerYear)
	holiday := holidayAmplitude * math.Exp(-math.Pow(doy-holidayPeakDay, 2)/holidayWidth)
	summer := summerAmplitude * math.Exp(-math.Pow(doy-summerPeakDay, 2)/summerWidth)

	price := basePrice + seasonal + holiday + summer
	if wd := d.Weekday(); wd == time.Friday || wd == time.Saturday {
		price += weekendUplift
	}
	return price
}

func citySeed(city string) int64 {
	h := fnv.New64a()
	h.Write([]byte("prices|"))
	h.Write([]byte(city))
	return int64(h.Sum64())
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
