package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/config"
)

// ErrNoFutureWindows is returned when the forecast horizon holds no weeks
// on or after the current date.
var ErrNoFutureWindows = errors.New("no future weeks available in forecast")

// Service scores forecasted weeks and selects the best travel window.
type Service struct {
	cfg config.ScoringConfig
	now func() time.Time
}

// NewService creates a scoring service
func NewService(cfg config.ScoringConfig) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Score attaches component and composite scores to each forecasted week.
// Price and crowd normalize across the whole horizon, so scores are
// relative to the destination's own year, not absolute dollar amounts.
func (s *Service) Score(points []forecast.ForecastPoint) []ScoredWeek {
	n := len(points)
	prices := make([]float64, n)
	temps := make([]float64, n)
	precips := make([]float64, n)
	crowds := make([]float64, n)
	for i, p := range points {
		prices[i] = p.Price
		temps[i] = p.Temperature
		precips[i] = p.Precipitation
		crowds[i] = p.Crowd
	}

	priceScores := MinMaxInvert(prices)
	weatherScores := WeatherScores(temps, precips, s.cfg.IdealTemperature, s.cfg.TemperatureTolerance)
	crowdScores := MinMaxInvert(crowds)

	scored := make([]ScoredWeek, n)
	for i, p := range points {
		scored[i] = ScoredWeek{
			WeekStart:     p.WeekStart,
			Price:         p.Price,
			Temperature:   p.Temperature,
			Precipitation: p.Precipitation,
			Crowd:         p.Crowd,
			PriceScore:    priceScores[i],
			WeatherScore:  weatherScores[i],
			CrowdScore:    crowdScores[i],
			TravelScore: s.cfg.PriceWeight*priceScores[i] +
				s.cfg.WeatherWeight*weatherScores[i] +
				s.cfg.CrowdWeight*crowdScores[i],
		}
	}
	return scored
}

// SelectBest picks the best travel window from scored weeks. Candidates
// are weeks starting on or after today; a budget, when given, further
// filters them by predicted price. The winner is the first week with the
// maximal rolling trip-window score.
func (s *Service) SelectBest(scored []ScoredWeek, tripDays int, maxBudget *float64) (*Selection, error) {
	today := dayOf(s.now())

	candidates := make([]ScoredWeek, 0, len(scored))
	for _, w := range scored {
		if !w.WeekStart.Before(today) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoFutureWindows
	}

	if maxBudget != nil {
		minPrice := candidates[0].Price
		within := make([]ScoredWeek, 0, len(candidates))
		for _, w := range candidates {
			minPrice = math.Min(minPrice, w.Price)
			if w.Price <= *maxBudget {
				within = append(within, w)
			}
		}
		if len(within) == 0 {
			return nil, &common.InfeasibleConstraintError{
				Constraint: "max_budget",
				Minimum:    round2(minPrice),
				Message: fmt.Sprintf("no travel windows within budget of $%.2f, minimum predicted price is $%.2f",
					*maxBudget, minPrice),
			}
		}
		candidates = within
	}

	window := weeksWindow(tripDays)
	for i := range candidates {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += candidates[j].TravelScore
		}
		candidates[i].RollingScore = sum / float64(i-start+1)
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].RollingScore > candidates[best].RollingScore {
			best = i
		}
	}

	return &Selection{
		Window:     buildWindow(candidates[best], tripDays),
		Candidates: candidates,
	}, nil
}

// weeksWindow converts a trip length in days to a rolling window in weeks.
func weeksWindow(tripDays int) int {
	w := tripDays / 7
	if w < 1 {
		w = 1
	}
	return w
}

// buildWindow clamps the chosen week to signal bounds and applies
// presentation rounding.
func buildWindow(w ScoredWeek, tripDays int) Window {
	return Window{
		WeekStart:     w.WeekStart,
		TripDays:      tripDays,
		Price:         round2(clamp(w.Price, forecast.MinPrice, forecast.MaxPrice)),
		Temperature:   round1(clamp(w.Temperature, forecast.MinTemperature, forecast.MaxTemperature)),
		Precipitation: round1(clamp(w.Precipitation, forecast.MinPrecipitation, forecast.MaxPrecipitation)),
		Crowd:         round1(clamp(w.Crowd, forecast.MinCrowd, forecast.MaxCrowd)),
		PriceScore:    round1(clamp(w.PriceScore, 0, 100)),
		WeatherScore:  round1(clamp(w.WeatherScore, 0, 100)),
		CrowdScore:    round1(clamp(w.CrowdScore, 0, 100)),
		TravelScore:   round2(clamp(w.RollingScore, 0, 100)),
	}
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
