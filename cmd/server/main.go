package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/charts"
	"github.com/skytrail/tripcast/internal/crowds"
	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/explain"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/internal/history"
	"github.com/skytrail/tripcast/internal/planner"
	"github.com/skytrail/tripcast/internal/prediction"
	"github.com/skytrail/tripcast/internal/prices"
	"github.com/skytrail/tripcast/internal/route"
	"github.com/skytrail/tripcast/internal/scoring"
	"github.com/skytrail/tripcast/internal/weather"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/database"
	"github.com/skytrail/tripcast/pkg/health"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/middleware"
	"github.com/skytrail/tripcast/pkg/pubsub"
	"github.com/skytrail/tripcast/pkg/ratelimit"
	"github.com/skytrail/tripcast/pkg/redis"
	"github.com/skytrail/tripcast/pkg/secrets"
	"github.com/skytrail/tripcast/pkg/storage"
	"github.com/skytrail/tripcast/pkg/tracing"
)

const serviceName = "tripcast-api"

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Resolve secret references before anything dials out
	if err := secrets.Hydrate(ctx, cfg); err != nil {
		logger.Fatal("Failed to hydrate secrets", zap.Error(err))
	}

	sentryEnabled := false
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Environment,
		}); err != nil {
			logger.Warn("Failed to initialize Sentry", zap.Error(err))
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracing, err := tracing.Init(ctx, &cfg.Tracing, serviceName, cfg.Server.Environment)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to shut down tracing", zap.Error(err))
		}
	}()

	// Connect to PostgreSQL
	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)

	// database/sql handle for the itinerary store and health probes
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Failed to open database handle", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL database")

	// Connect to Redis
	redisClient, err := redis.NewRedisClientWithTimeouts(&cfg.Redis, &cfg.Timeouts)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	publisher, err := pubsub.FromConfig(&cfg.PubSub, serviceName)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	var exports storage.Storage
	if cfg.Storage.Enabled {
		s3store, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			BaseURL:   cfg.Storage.BaseURL,
		})
		if err != nil {
			logger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		exports = s3store
		logger.Info("Itinerary exports enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Build the service graph
	dests := destinations.NewService()
	eventSvc := events.NewService()
	priceGen := prices.NewGenerator()
	crowdGen := crowds.NewGenerator(eventSvc)

	var meteo *weather.Client
	if cfg.OpenMeteo.Enabled {
		meteo = weather.NewClient(cfg.OpenMeteo)
		logger.Info("Live weather enabled", zap.String("base_url", cfg.OpenMeteo.BaseURL))
	}
	weatherSvc := weather.NewService(meteo, weather.NewSynthetic(), redisClient, time.Duration(cfg.Forecast.CacheTTLSeconds)*time.Second)

	forecaster := forecast.NewService(cfg.Forecast)
	scorer := scoring.NewService(cfg.Scoring)
	texts := explain.FromConfig(cfg.Ollama)

	historySvc := history.NewService(history.NewRepository(pool))

	predictor := prediction.NewService(
		dests, priceGen, weatherSvc, crowdGen,
		forecaster, scorer, eventSvc, texts,
		historySvc, publisher, cfg.Forecast,
	)

	plannerSvc := planner.NewService(
		dests, predictor, eventSvc,
		route.NewOptimizer(cfg.Route),
		planner.NewRepository(db), exports, publisher,
		cfg.Planner, cfg.Route, cfg.Forecast,
	)

	chartSvc := charts.NewService(predictor, exports)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(serviceName))
	if cfg.Tracing.Enabled {
		router.Use(tracing.Middleware(serviceName))
	}
	if sentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	// CORS configuration
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.Server.CORSOriginList()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	router.Use(cors.New(corsCfg))

	// Health check and metrics (no rate limiting)
	healthChecks := map[string]health.Checker{
		"database": health.DatabaseChecker(db),
		"redis":    health.RedisChecker(redisClient.Client),
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		for name, check := range healthChecks {
			if err := check(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"check":  name,
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes. Streaming endpoints hold the response open for the whole
	// planning run, so they get a sibling group without the timeout wrapper.
	api := router.Group("/api/v1")
	streams := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		limit := middleware.RateLimit(ratelimit.NewLimiter(redisClient.Client, cfg.RateLimit))
		api.Use(limit)
		streams.Use(limit)
	}
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	plannerHandler := planner.NewHandler(plannerSvc)

	destinations.NewHandler(dests).RegisterRoutes(api)
	prediction.NewHandler(predictor).RegisterRoutes(api)
	history.NewHandler(historySvc).RegisterRoutes(api)
	charts.NewHandler(chartSvc).RegisterRoutes(api)
	plannerHandler.RegisterRoutes(api)
	plannerHandler.RegisterStreamRoutes(streams)

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Info("Travel forecast service starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
