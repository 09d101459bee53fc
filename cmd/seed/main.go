package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/crowds"
	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/explain"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/internal/history"
	"github.com/skytrail/tripcast/internal/prediction"
	"github.com/skytrail/tripcast/internal/prices"
	"github.com/skytrail/tripcast/internal/scoring"
	"github.com/skytrail/tripcast/internal/weather"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/database"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/pubsub"
)

const serviceName = "tripcast-seed"

// Backfills prediction history for the destination catalog so that trend
// endpoints and itinerary planning have data before the first real traffic.
// Weather is always synthesized here; the live Open-Meteo client stays out of
// the loop so a backfill run never burns through the provider quota.
func main() {
	cities := flag.String("cities", "", "comma-separated city names (default: full catalog)")
	tripDays := flag.Int("trip-days", 7, "trip length in days for seeded predictions")
	weeks := flag.Int("weeks", 52, "forecast horizon in weeks")
	flag.Parse()

	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)

	dests := destinations.NewService()
	eventSvc := events.NewService()
	weatherSvc := weather.NewService(nil, weather.NewSynthetic(), nil, 0)
	historySvc := history.NewService(history.NewRepository(pool))

	predictor := prediction.NewService(
		dests,
		prices.NewGenerator(),
		weatherSvc,
		crowds.NewGenerator(eventSvc),
		forecast.NewService(cfg.Forecast),
		scoring.NewService(cfg.Scoring),
		eventSvc,
		explain.NewTemplateGenerator(),
		historySvc,
		pubsub.NoopPublisher{},
		cfg.Forecast,
	)

	targets := targetCities(*cities, dests)
	logger.Info("Seeding prediction history",
		zap.Int("cities", len(targets)),
		zap.Int("trip_days", *tripDays),
		zap.Int("weeks", *weeks))

	ctx := context.Background()
	start := time.Now()
	var seeded, failed int
	for _, city := range targets {
		resp, err := predictor.Predict(ctx, &prediction.PredictRequest{
			Destination:   city,
			TripDays:      *tripDays,
			ForecastWeeks: *weeks,
		})
		if err != nil {
			logger.Warn("Failed to seed city", zap.String("city", city), zap.Error(err))
			failed++
			continue
		}
		seeded++
		logger.Info("Seeded prediction",
			zap.String("city", resp.Destination),
			zap.String("best_start", resp.BestStartDate),
			zap.Float64("travel_score", resp.TravelScore),
			zap.Float64("price", resp.PredictedPrice))
	}

	logger.Info("Seed run complete",
		zap.Int("seeded", seeded),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
}

// targetCities parses the -cities flag, falling back to every catalog entry.
func targetCities(flagValue string, dests *destinations.Service) []string {
	if strings.TrimSpace(flagValue) == "" {
		catalog := dests.List()
		names := make([]string, 0, len(catalog))
		for _, d := range catalog {
			names = append(names, d.Name)
		}
		return names
	}
	var names []string
	for _, part := range strings.Split(flagValue, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
