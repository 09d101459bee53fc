package forecast

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/logger"
)

// Service turns daily signal history into weekly forecasts.
type Service struct {
	cfg config.ForecastConfig
}

// NewService creates a forecasting service
func NewService(cfg config.ForecastConfig) *Service {
	return &Service{cfg: cfg}
}

// PrepareWeekly joins the raw daily signals and aggregates them into
// Monday-start calendar weeks. An empty price series is an
// InsufficientDataError.
func (s *Service) PrepareWeekly(city string, prices []DailyPoint, weather []WeatherDay, crowds []DailyPoint) ([]WeeklyPoint, error) {
	hist, err := BuildHistory(prices, weather, crowds)
	if err != nil {
		var insufficient *InsufficientDataError
		if errors.As(err, &insufficient) {
			return nil, &InsufficientDataError{City: city}
		}
		return nil, err
	}
	return AggregateWeekly(hist), nil
}

// Project fits one harmonic model per signal and projects the configured
// horizon of weekly points strictly after the last historical week. Values
// outside the signal bounds are clipped and logged.
func (s *Service) Project(city string, weekly []WeeklyPoint) ([]ForecastPoint, error) {
	if len(weekly) == 0 {
		return nil, &InsufficientDataError{City: city}
	}

	weekly = s.extendWeekly(city, weekly)

	dates := make([]time.Time, len(weekly))
	price := make([]float64, len(weekly))
	temp := make([]float64, len(weekly))
	precip := make([]float64, len(weekly))
	crowd := make([]float64, len(weekly))
	for i, w := range weekly {
		dates[i] = w.WeekStart
		price[i] = w.Price
		temp[i] = w.Temperature
		precip[i] = w.Precipitation
		crowd[i] = w.Crowd
	}

	priceModel, err := fitHarmonic(dates, price, s.cfg.Harmonics, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fit price model for %s: %w", city, err)
	}
	tempModel, err := fitHarmonic(dates, temp, s.cfg.Harmonics, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fit temperature model for %s: %w", city, err)
	}
	precipModel, err := fitHarmonic(dates, precip, s.cfg.Harmonics, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fit precipitation model for %s: %w", city, err)
	}
	crowdModel, err := fitHarmonic(dates, crowd, s.cfg.Harmonics, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fit crowd model for %s: %w", city, err)
	}

	horizon := s.cfg.HorizonWeeks
	if horizon <= 0 {
		horizon = 52
	}
	last := weekly[len(weekly)-1].WeekStart

	clipped := make(map[string]int)
	points := make([]ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		ws := last.AddDate(0, 0, 7*i)
		points = append(points, ForecastPoint{
			WeekStart:     ws,
			Price:         clipSignal(priceModel.predict(ws), MinPrice, MaxPrice, "price", clipped),
			Temperature:   clipSignal(tempModel.predict(ws), MinTemperature, MaxTemperature, "temperature", clipped),
			Precipitation: clipSignal(precipModel.predict(ws), MinPrecipitation, MaxPrecipitation, "precipitation", clipped),
			Crowd:         clipSignal(crowdModel.predict(ws), MinCrowd, MaxCrowd, "crowd", clipped),
		})
	}

	for signal, count := range clipped {
		logger.Warn("forecast exceeded signal bounds, clipped",
			zap.String("city", city),
			zap.String("signal", signal),
			zap.Int("points", count),
		)
	}

	return points, nil
}

// extendWeekly synthesizes additional weeks when the observed history is
// shorter than the configured floor, cycling observed weeks forward in time
// with small perturbations. The perturbation stream is seeded from the city
// name so runs are reproducible.
func (s *Service) extendWeekly(city string, weekly []WeeklyPoint) []WeeklyPoint {
	minWeeks := s.cfg.MinHistoryWeeks
	if minWeeks <= 0 || len(weekly) >= minWeeks {
		return weekly
	}

	logger.Warn("short history, synthesizing weeks",
		zap.String("city", city),
		zap.Int("observed", len(weekly)),
		zap.Int("floor", minWeeks),
	)

	rng := rand.New(rand.NewSource(citySeed(city)))
	observed := len(weekly)
	out := make([]WeeklyPoint, len(weekly), minWeeks)
	copy(out, weekly)

	for i := 0; len(out) < minWeeks; i++ {
		src := out[i%observed]
		last := out[len(out)-1].WeekStart
		out = append(out, WeeklyPoint{
			WeekStart:     last.AddDate(0, 0, 7),
			Price:         src.Price + rng.Float64()*100 - 50,
			Temperature:   src.Temperature + rng.Float64()*4 - 2,
			Precipitation: math.Max(0, src.Precipitation+rng.Float64()*10-5),
			Crowd:         clamp(src.Crowd+rng.Float64()*20-10, 0, 100),
		})
	}
	return out
}

func clipSignal(v, min, max float64, signal string, clipped map[string]int) float64 {
	if v < min {
		clipped[signal]++
		return min
	}
	if v > max {
		clipped[signal]++
		return max
	}
	return v
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}

func citySeed(city string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(city))
	return int64(h.Sum64())
}
