package forecast

import (
	"math"
	"sort"
	"time"
)

// WeekStartOf returns the Monday of the calendar week containing d, at
// midnight UTC.
func WeekStartOf(d time.Time) time.Time {
	d = d.UTC()
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// BuildHistory joins the three signal sources into one daily history. The
// price series defines the index; weather and crowd observations are
// matched by calendar day, forward-filled, backward-filled, and finally
// defaulted when a series is empty.
func BuildHistory(prices []DailyPoint, weather []WeatherDay, crowds []DailyPoint) (*History, error) {
	if len(prices) == 0 {
		return nil, &InsufficientDataError{}
	}

	sorted := make([]DailyPoint, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	tempByDay := make(map[time.Time]float64, len(weather))
	precipByDay := make(map[time.Time]float64, len(weather))
	for _, w := range weather {
		d := dayOf(w.Date)
		tempByDay[d] = w.Temperature
		precipByDay[d] = w.Precipitation
	}
	crowdByDay := make(map[time.Time]float64, len(crowds))
	for _, c := range crowds {
		crowdByDay[dayOf(c.Date)] = c.Value
	}

	n := len(sorted)
	temps := make([]float64, n)
	precips := make([]float64, n)
	crowdVals := make([]float64, n)
	for i, p := range sorted {
		d := dayOf(p.Date)
		temps[i] = lookupOrNaN(tempByDay, d)
		precips[i] = lookupOrNaN(precipByDay, d)
		crowdVals[i] = lookupOrNaN(crowdByDay, d)
	}

	fillGaps(temps, DefaultTemperature)
	fillGaps(precips, DefaultPrecipitation)
	fillGaps(crowdVals, DefaultCrowd)

	days := make([]Day, n)
	for i, p := range sorted {
		days[i] = Day{
			Date:          dayOf(p.Date),
			Price:         p.Value,
			Temperature:   temps[i],
			Precipitation: precips[i],
			Crowd:         crowdVals[i],
		}
	}
	return &History{Days: days}, nil
}

// AggregateWeekly rolls a daily history up into Monday-start calendar
// weeks: price, temperature and crowd as means, precipitation as the sum.
func AggregateWeekly(hist *History) []WeeklyPoint {
	if hist == nil || len(hist.Days) == 0 {
		return nil
	}

	type bucket struct {
		priceSum, tempSum, precipSum, crowdSum float64
		count                                  int
	}
	buckets := make(map[time.Time]*bucket)
	for _, d := range hist.Days {
		ws := WeekStartOf(d.Date)
		b, ok := buckets[ws]
		if !ok {
			b = &bucket{}
			buckets[ws] = b
		}
		b.priceSum += d.Price
		b.tempSum += d.Temperature
		b.precipSum += d.Precipitation
		b.crowdSum += d.Crowd
		b.count++
	}

	weeks := make([]WeeklyPoint, 0, len(buckets))
	for ws, b := range buckets {
		n := float64(b.count)
		weeks = append(weeks, WeeklyPoint{
			WeekStart:     ws,
			Price:         b.priceSum / n,
			Temperature:   b.tempSum / n,
			Precipitation: b.precipSum,
			Crowd:         b.crowdSum / n,
		})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart.Before(weeks[j].WeekStart) })
	return weeks
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lookupOrNaN(m map[time.Time]float64, d time.Time) float64 {
	if v, ok := m[d]; ok {
		return v
	}
	return math.NaN()
}

// fillGaps replaces NaN entries in place: forward fill, then backward
// fill, then the signal default for series with no observations at all.
func fillGaps(vals []float64, def float64) {
	last := math.NaN()
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = last
		} else {
			last = v
		}
	}
	next := math.NaN()
	for i := len(vals) - 1; i >= 0; i-- {
		if math.IsNaN(vals[i]) {
			vals[i] = next
		} else {
			next = vals[i]
		}
	}
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = def
		}
	}
}
