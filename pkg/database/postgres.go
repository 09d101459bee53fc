package database

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/resilience"
	"go.uber.org/zap"
)

// NewPostgresPool creates a new PostgreSQL connection pool
func NewPostgresPool(cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	dsn := cfg.DSN()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.AfterConnect = createStatementTimeoutCallback(resolveQueryTimeout(cfg.QueryTimeout))

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// Close closes the database connection pool
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

// RunMigrations applies pending schema migrations from the configured path.
func RunMigrations(cfg *config.DatabaseConfig) error {
	sourceURL := "file://" + cfg.MigrationsPath

	m, err := migrate.New(sourceURL, cfg.URL())
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("database migrations applied", zap.String("source", sourceURL))
	return nil
}

// DBPool bundles a primary pool with optional read replicas and a breaker.
type DBPool struct {
	Primary  *pgxpool.Pool
	Replicas []*pgxpool.Pool

	breaker *resilience.CircuitBreaker
	metrics *DBMetrics
	next    uint64
}

// NewDBPool wires a primary pool with breaker protection and metrics.
func NewDBPool(cfg *config.DatabaseConfig, serviceName string) (*DBPool, error) {
	primary, err := NewPostgresPool(cfg)
	if err != nil {
		return nil, err
	}

	pool := &DBPool{
		Primary: primary,
		metrics: NewDBMetrics(serviceName),
	}

	if cfg.Breaker.Enabled {
		settings := resilience.BuildSettings(
			sanitizeBreakerName(serviceName+" database"),
			cfg.Breaker.IntervalSeconds,
			cfg.Breaker.TimeoutSeconds,
			cfg.Breaker.FailureThreshold,
			cfg.Breaker.SuccessThreshold,
		)
		pool.breaker = resilience.NewCircuitBreaker(settings, resilience.GracefulDegradation("database"))
	}

	return pool, nil
}

// GetPrimary returns the writable pool.
func (p *DBPool) GetPrimary() *pgxpool.Pool {
	return p.Primary
}

// GetReplica returns the next read replica, falling back to the primary when
// none are configured.
func (p *DBPool) GetReplica() *pgxpool.Pool {
	if len(p.Replicas) == 0 {
		return p.Primary
	}
	n := atomic.AddUint64(&p.next, 1)
	return p.Replicas[n%uint64(len(p.Replicas))]
}

// Execute runs a database operation through the breaker when one is enabled.
func (p *DBPool) Execute(ctx context.Context, queryName string, operation resilience.Operation) (interface{}, error) {
	start := time.Now()
	var result interface{}
	var err error

	if p.breaker != nil {
		result, err = p.breaker.Execute(ctx, operation)
	} else {
		result, err = operation(ctx)
	}

	p.RecordQuery(queryName, time.Since(start), err)
	return result, err
}

// RecordQuery tracks query latency and failures.
func (p *DBPool) RecordQuery(queryName string, elapsed time.Duration, err error) {
	if p.metrics == nil {
		return
	}
	p.metrics.queryDuration.WithLabelValues(queryName).Observe(elapsed.Seconds())
	if err != nil {
		p.metrics.queryErrors.WithLabelValues(queryName).Inc()
	}
}

// Close shuts down all pools. Safe to call with nil members.
func (p *DBPool) Close() {
	if p.Primary != nil {
		p.Primary.Close()
	}
	for _, replica := range p.Replicas {
		if replica != nil {
			replica.Close()
		}
	}
}

// DBMetrics holds prometheus collectors for database activity.
type DBMetrics struct {
	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
}

// NewDBMetrics registers database metrics for the service.
func NewDBMetrics(serviceName string) *DBMetrics {
	name := strings.ReplaceAll(sanitizeBreakerName(serviceName), "-", "_")
	return &DBMetrics{
		queryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name + "_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
		queryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: name + "_db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"query"}),
	}
}

// createStatementTimeoutCallback sets a per-connection statement timeout so a
// stuck query cannot hold a pool slot past its deadline.
func createStatementTimeoutCallback(timeoutSeconds int) func(ctx context.Context, conn *pgx.Conn) error {
	return func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, fmt.Sprintf("SET statement_timeout = %d", timeoutSeconds*1000))
		return err
	}
}

// sanitizeBreakerName normalizes a display name into a metric-safe label.
func sanitizeBreakerName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// resolveQueryTimeout picks the first positive override or the default.
func resolveQueryTimeout(timeout ...int) int {
	if len(timeout) > 0 && timeout[0] > 0 {
		return timeout[0]
	}
	return config.DefaultDatabaseQueryTimeout
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
