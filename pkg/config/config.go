package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabaseQueryTimeout is the per-query timeout in seconds applied when
// no explicit timeout is configured.
const DefaultDatabaseQueryTimeout = 10

// Default Redis socket deadlines in seconds.
const (
	DefaultRedisReadTimeout  = 3
	DefaultRedisWriteTimeout = 3
)

// DefaultRedisReadTimeoutDuration returns the default read deadline.
func DefaultRedisReadTimeoutDuration() time.Duration {
	return time.Duration(DefaultRedisReadTimeout) * time.Second
}

// DefaultRedisWriteTimeoutDuration returns the default write deadline.
func DefaultRedisWriteTimeoutDuration() time.Duration {
	return time.Duration(DefaultRedisWriteTimeout) * time.Second
}

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Timeouts  TimeoutConfig
	Forecast  ForecastConfig
	Scoring   ScoringConfig
	Route     RouteConfig
	Planner   PlannerConfig
	OpenMeteo OpenMeteoConfig
	Ollama    OllamaConfig
	RateLimit RateLimitConfig
	PubSub    PubSubConfig
	Tracing   TracingConfig
	Sentry    SentryConfig
	Secrets   SecretsConfig
	Storage   StorageConfig
}

// TimeoutConfig holds fine-grained operation deadlines in seconds. Zero
// values fall back to the coarser operation timeout, then to defaults.
type TimeoutConfig struct {
	RedisReadTimeout      int
	RedisWriteTimeout     int
	RedisOperationTimeout int
}

// RedisReadTimeoutDuration resolves the read deadline.
func (c *TimeoutConfig) RedisReadTimeoutDuration() time.Duration {
	if c.RedisReadTimeout > 0 {
		return time.Duration(c.RedisReadTimeout) * time.Second
	}
	if c.RedisOperationTimeout > 0 {
		return time.Duration(c.RedisOperationTimeout) * time.Second
	}
	return DefaultRedisReadTimeoutDuration()
}

// RedisWriteTimeoutDuration resolves the write deadline.
func (c *TimeoutConfig) RedisWriteTimeoutDuration() time.Duration {
	if c.RedisWriteTimeout > 0 {
		return time.Duration(c.RedisWriteTimeout) * time.Second
	}
	if c.RedisOperationTimeout > 0 {
		return time.Duration(c.RedisOperationTimeout) * time.Second
	}
	return DefaultRedisWriteTimeoutDuration()
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	Environment    string
	ServiceName    string
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int // per-request timeout in seconds for the API group
	CORSOrigins    string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	MinConns       int
	QueryTimeout   int // seconds
	MigrationsPath string
	Breaker        DatabaseBreakerConfig
}

// DatabaseBreakerConfig holds circuit breaker settings for the database pool
type DatabaseBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	SuccessThreshold int
	TimeoutSeconds   int
	IntervalSeconds  int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ForecastConfig holds the forecasting pipeline knobs
type ForecastConfig struct {
	HorizonWeeks    int // weekly points projected past the last observation
	MinHistoryWeeks int // below this, history is synthesized up to the floor
	Harmonics       int // yearly Fourier pairs in the seasonal fit
	HistoryDays     int // daily history window length
	HistoryLagDays  int // history window ends this many days before now
	CacheTTLSeconds int // redis TTL for assembled daily history
}

// ScoringConfig holds score weighting and the weather comfort target
type ScoringConfig struct {
	PriceWeight          float64
	WeatherWeight        float64
	CrowdWeight          float64
	IdealTemperature     float64 // °C
	TemperatureTolerance float64 // °C of deviation that zeroes the temperature score
}

// RouteConfig holds route optimization settings
type RouteConfig struct {
	ExhaustiveLimit int     // at most this many stops get brute-force ordering
	FlightCostPerKm float64 // USD per km for flight cost estimates
}

// PlannerConfig holds multi-city planner settings
type PlannerConfig struct {
	BudgetSplitFactor float64 // per-city budget divisor multiplier
	FallbackLeadWeeks int     // trip start lead time when anchoring fails
	Travelers         int     // headcount used for per-person cost figures
}

// OpenMeteoConfig holds the external weather API settings
type OpenMeteoConfig struct {
	Enabled        bool
	ForecastURL    string
	ArchiveURL     string
	TimeoutSeconds int
}

// OllamaConfig holds the local LLM settings for generated prose
type OllamaConfig struct {
	Enabled        bool
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// EndpointRateLimitConfig overrides limits for a single endpoint
type EndpointRateLimitConfig struct {
	AuthenticatedLimit int
	AuthenticatedBurst int
	AnonymousLimit     int
	AnonymousBurst     int
	WindowSeconds      int
}

// RateLimitConfig holds Redis-backed rate limiting settings
type RateLimitConfig struct {
	Enabled           bool
	WindowSeconds     int
	DefaultLimit      int
	DefaultBurst      int
	AnonymousLimit    int
	AnonymousBurst    int
	RedisPrefix       string
	EndpointOverrides map[string]EndpointRateLimitConfig
}

// Window returns the configured window as a duration, defaulting to one minute.
func (c RateLimitConfig) Window() time.Duration {
	if c.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.WindowSeconds) * time.Second
}

// PubSubConfig holds NATS pub/sub configuration
type PubSubConfig struct {
	Enabled       bool
	URL           string
	SubjectPrefix string
}

// TracingConfig holds OpenTelemetry exporter configuration
type TracingConfig struct {
	Enabled     bool
	Endpoint    string // OTLP gRPC endpoint, host:port
	SampleRatio float64
}

// SentryConfig holds Sentry error reporting configuration
type SentryConfig struct {
	DSN         string
	Environment string
}

// SecretsConfig holds external secret backend configuration
type SecretsConfig struct {
	Provider        string // "", "vault", "aws", "gcp", "kubernetes"
	CacheTTLSeconds int
	VaultAddress    string
	VaultToken      string
	VaultMount      string
	AWSRegion       string
	GCPProjectID    string
	KubernetesPath  string
}

// StorageConfig holds S3 export archive configuration
type StorageConfig struct {
	Enabled   bool
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	BaseURL   string
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ServiceName:    serviceName,
			ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 30),
			RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT", 60),
			CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "tripcast"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 5),
			QueryTimeout:   getEnvAsInt("DB_QUERY_TIMEOUT", DefaultDatabaseQueryTimeout),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
			Breaker: DatabaseBreakerConfig{
				Enabled:          getEnvAsBool("DB_BREAKER_ENABLED", true),
				FailureThreshold: getEnvAsInt("DB_BREAKER_FAILURE_THRESHOLD", 5),
				SuccessThreshold: getEnvAsInt("DB_BREAKER_SUCCESS_THRESHOLD", 2),
				TimeoutSeconds:   getEnvAsInt("DB_BREAKER_TIMEOUT_SECONDS", 30),
				IntervalSeconds:  getEnvAsInt("DB_BREAKER_INTERVAL_SECONDS", 60),
			},
		},
		Timeouts: TimeoutConfig{
			RedisReadTimeout:      getEnvAsInt("REDIS_READ_TIMEOUT", 0),
			RedisWriteTimeout:     getEnvAsInt("REDIS_WRITE_TIMEOUT", 0),
			RedisOperationTimeout: getEnvAsInt("REDIS_OPERATION_TIMEOUT", 0),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Forecast: ForecastConfig{
			HorizonWeeks:    getEnvAsInt("FORECAST_HORIZON_WEEKS", 52),
			MinHistoryWeeks: getEnvAsInt("FORECAST_MIN_HISTORY_WEEKS", 8),
			Harmonics:       getEnvAsInt("FORECAST_HARMONICS", 3),
			HistoryDays:     getEnvAsInt("FORECAST_HISTORY_DAYS", 365),
			HistoryLagDays:  getEnvAsInt("FORECAST_HISTORY_LAG_DAYS", 3),
			CacheTTLSeconds: getEnvAsInt("FORECAST_CACHE_TTL", 3600),
		},
		Scoring: ScoringConfig{
			PriceWeight:          getEnvAsFloat("PRICE_WEIGHT", 0.40),
			WeatherWeight:        getEnvAsFloat("WEATHER_WEIGHT", 0.30),
			CrowdWeight:          getEnvAsFloat("CROWD_WEIGHT", 0.30),
			IdealTemperature:     getEnvAsFloat("IDEAL_TEMPERATURE", 22),
			TemperatureTolerance: getEnvAsFloat("TEMPERATURE_TOLERANCE", 15),
		},
		Route: RouteConfig{
			ExhaustiveLimit: getEnvAsInt("ROUTE_EXHAUSTIVE_LIMIT", 6),
			FlightCostPerKm: getEnvAsFloat("FLIGHT_COST_PER_KM", 0.15),
		},
		Planner: PlannerConfig{
			BudgetSplitFactor: getEnvAsFloat("PLANNER_BUDGET_SPLIT_FACTOR", 1.3),
			FallbackLeadWeeks: getEnvAsInt("PLANNER_FALLBACK_LEAD_WEEKS", 4),
			Travelers:         getEnvAsInt("PLANNER_TRAVELERS", 2),
		},
		OpenMeteo: OpenMeteoConfig{
			Enabled:        getEnvAsBool("OPENMETEO_ENABLED", false),
			ForecastURL:    getEnv("OPENMETEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
			ArchiveURL:     getEnv("OPENMETEO_ARCHIVE_URL", "https://archive-api.open-meteo.com/v1/archive"),
			TimeoutSeconds: getEnvAsInt("OPENMETEO_TIMEOUT", 15),
		},
		Ollama: OllamaConfig{
			Enabled:        getEnvAsBool("OLLAMA_ENABLED", false),
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:          getEnv("OLLAMA_MODEL", "llama3:latest"),
			TimeoutSeconds: getEnvAsInt("OLLAMA_TIMEOUT", 30),
		},
		RateLimit: RateLimitConfig{
			Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", false),
			WindowSeconds:  getEnvAsInt("RATE_LIMIT_WINDOW", 60),
			DefaultLimit:   getEnvAsInt("RATE_LIMIT_DEFAULT", 100),
			DefaultBurst:   getEnvAsInt("RATE_LIMIT_BURST", 10),
			AnonymousLimit: getEnvAsInt("RATE_LIMIT_ANONYMOUS", 30),
			AnonymousBurst: getEnvAsInt("RATE_LIMIT_ANONYMOUS_BURST", 5),
			RedisPrefix:    getEnv("RATE_LIMIT_PREFIX", "rl"),
		},
		PubSub: PubSubConfig{
			Enabled:       getEnvAsBool("PUBSUB_ENABLED", false),
			URL:           getEnv("NATS_URL", "nats://localhost:4222"),
			SubjectPrefix: getEnv("PUBSUB_SUBJECT_PREFIX", "tripcast"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:    getEnv("OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio: getEnvAsFloat("TRACING_SAMPLE_RATIO", 1.0),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("SENTRY_ENVIRONMENT", getEnv("ENVIRONMENT", "development")),
		},
		Secrets: SecretsConfig{
			Provider:        getEnv("SECRETS_PROVIDER", ""),
			CacheTTLSeconds: getEnvAsInt("SECRETS_CACHE_TTL", 300),
			VaultAddress:    getEnv("VAULT_ADDR", ""),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			VaultMount:      getEnv("VAULT_MOUNT", "secret"),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
			KubernetesPath:  getEnv("SECRETS_KUBERNETES_PATH", "/var/run/secrets/tripcast"),
		},
		Storage: StorageConfig{
			Enabled:   getEnvAsBool("EXPORT_ENABLED", false),
			Bucket:    getEnv("EXPORT_BUCKET", ""),
			Region:    getEnv("EXPORT_REGION", "us-east-1"),
			Endpoint:  getEnv("EXPORT_ENDPOINT", ""),
			AccessKey: getEnv("EXPORT_ACCESS_KEY", ""),
			SecretKey: getEnv("EXPORT_SECRET_KEY", ""),
			BaseURL:   getEnv("EXPORT_BASE_URL", ""),
		},
	}

	if err := cfg.Scoring.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects weight sets that cannot produce a 0-100 composite score.
func (c ScoringConfig) validate() error {
	sum := c.PriceWeight + c.WeatherWeight + c.CrowdWeight
	if sum <= 0 {
		return fmt.Errorf("scoring weights must sum to a positive value, got %v", sum)
	}
	if c.PriceWeight < 0 || c.WeatherWeight < 0 || c.CrowdWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if c.TemperatureTolerance <= 0 {
		return fmt.Errorf("temperature tolerance must be positive, got %v", c.TemperatureTolerance)
	}
	return nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the database connection string in URL form, as the migration
// tooling expects.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// CORSOriginList splits the configured origins into a slice.
func (c *ServerConfig) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
