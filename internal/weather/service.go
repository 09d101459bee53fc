package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/redis"
)

// Service assembles a contiguous daily weather series for a coordinate.
// Observed days come from the archive API, the near future from the
// forecast API, and everything the APIs cannot cover is synthesized. A
// nil client keeps the whole series synthetic.
type Service struct {
	client *Client
	synth  *Synthetic
	cache  redis.ClientInterface
	ttl    time.Duration
	now    func() time.Time
}

func NewService(client *Client, synth *Synthetic, cache redis.ClientInterface, ttl time.Duration) *Service {
	return &Service{
		client: client,
		synth:  synth,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Live reports whether the service is backed by the weather APIs rather
// than synthetic data alone.
func (s *Service) Live() bool {
	return s.client != nil
}

// Daily returns one weather observation per day from start through end
// inclusive. Results are cached per H3 cell and window.
func (s *Service) Daily(ctx context.Context, lat, lon float64, start, end time.Time) []forecast.WeatherDay {
	start = dayOf(start)
	end = dayOf(end)
	if end.Before(start) {
		return nil
	}

	key := s.cacheKey(lat, lon, start, end)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached
	}

	days := s.assemble(ctx, lat, lon, start, end)
	s.toCache(ctx, key, days)
	return days
}

func (s *Service) assemble(ctx context.Context, lat, lon float64, start, end time.Time) []forecast.WeatherDay {
	if s.client == nil {
		return s.synth.Daily(lat, lon, start, end)
	}

	today := dayOf(s.now())
	archiveCutoff := today.AddDate(0, 0, -ArchiveLagDays)
	forecastStart := maxDay(start, today)

	var days []forecast.WeatherDay

	// Observed past, ending at the archive cutoff.
	historicalEnd := minDay(end, archiveCutoff)
	usedArchive := start.Before(archiveCutoff) && !historicalEnd.Before(start)
	if usedArchive {
		observed, err := s.client.Archive(ctx, lat, lon, start, historicalEnd)
		if err != nil || len(observed) == 0 {
			logger.Warn("weather archive unavailable, synthesizing period",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(err),
			)
			observed = s.synth.Daily(lat, lon, start, historicalEnd)
		}
		days = append(days, observed...)
	}

	// Days between the archive cutoff and today are covered by neither API.
	gapStart := start
	if usedArchive {
		gapStart = historicalEnd.AddDate(0, 0, 1)
	}
	gapEnd := minDay(forecastStart.AddDate(0, 0, -1), end)
	if !gapStart.After(gapEnd) && !gapEnd.Before(start) {
		days = append(days, s.synth.Daily(lat, lon, gapStart, gapEnd)...)
	}

	// Near future through the forecast API, remainder synthesized.
	if !end.Before(today) && !forecastStart.After(end) {
		forecastCutoff := today.AddDate(0, 0, ForecastHorizonDays)
		forecastEnd := minDay(end, forecastCutoff)

		if !forecastStart.After(forecastEnd) {
			predicted, err := s.client.Forecast(ctx, lat, lon, forecastStart, forecastEnd)
			if err != nil || len(predicted) == 0 {
				logger.Warn("weather forecast unavailable, synthesizing period",
					zap.Float64("lat", lat),
					zap.Float64("lon", lon),
					zap.Error(err),
				)
				predicted = s.synth.Daily(lat, lon, forecastStart, forecastEnd)
			}
			days = append(days, predicted...)
		}

		if end.After(forecastCutoff) {
			tailStart := maxDay(forecastStart, forecastCutoff.AddDate(0, 0, 1))
			days = append(days, s.synth.Daily(lat, lon, tailStart, end)...)
		}
	}

	if len(days) == 0 {
		return s.synth.Daily(lat, lon, start, end)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

func (s *Service) cacheKey(lat, lon float64, start, end time.Time) string {
	return fmt.Sprintf("weather:%s:%s:%s",
		destinations.CellKey(lat, lon),
		start.Format(dateLayout),
		end.Format(dateLayout),
	)
}

func (s *Service) fromCache(ctx context.Context, key string) ([]forecast.WeatherDay, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.GetString(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var days []forecast.WeatherDay
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		logger.Warn("failed to decode cached weather series", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return days, true
}

func (s *Service) toCache(ctx context.Context, key string, days []forecast.WeatherDay) {
	if s.cache == nil || len(days) == 0 {
		return
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := s.cache.SetWithExpiration(ctx, key, string(raw), s.ttl); err != nil {
		logger.Warn("failed to cache weather series", zap.String("key", key), zap.Error(err))
	}
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
