package forecast

import (
	"fmt"
	"time"
)

// Signal value bounds. Forecasts outside these ranges are clipped and
// logged, never returned.
const (
	MinPrice         = 100.0
	MaxPrice         = 2000.0
	MinTemperature   = -20.0
	MaxTemperature   = 45.0
	MinPrecipitation = 0.0
	MaxPrecipitation = 200.0
	MinCrowd         = 0.0
	MaxCrowd         = 100.0
)

// Defaults substituted for signals that stay missing after forward and
// backward filling.
const (
	DefaultTemperature   = 20.0
	DefaultPrecipitation = 0.0
	DefaultCrowd         = 50.0
)

// DailyPoint is one day's observation of a single signal.
type DailyPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// WeatherDay is one day's weather observation.
type WeatherDay struct {
	Date          time.Time `json:"date"`
	Temperature   float64   `json:"temperature"`   // °C daily average
	Precipitation float64   `json:"precipitation"` // mm
}

// Day is one fully joined day of history. All four signals are present;
// gaps have been filled.
type Day struct {
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	Crowd         float64   `json:"crowd"`
}

// History is an assembled daily history for one destination. The price
// series defines the daily index.
type History struct {
	Days []Day `json:"days"`
}

// WeeklyPoint is one calendar week of aggregated history. Weeks start on
// Monday. Price, temperature and crowd are weekly means, precipitation is
// the weekly sum.
type WeeklyPoint struct {
	WeekStart     time.Time `json:"week_start"`
	Price         float64   `json:"price"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	Crowd         float64   `json:"crowd"`
}

// ForecastPoint is one projected future week, clipped to signal bounds.
type ForecastPoint struct {
	WeekStart     time.Time `json:"week_start"`
	Price         float64   `json:"price"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	Crowd         float64   `json:"crowd"`
}

// InsufficientDataError reports a history too thin to forecast from.
type InsufficientDataError struct {
	City string
}

func (e *InsufficientDataError) Error() string {
	if e.City != "" {
		return fmt.Sprintf("no historical data available for %s", e.City)
	}
	return "no historical data available"
}
