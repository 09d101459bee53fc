package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Checker is a single readiness probe.
type Checker func() error

// CheckerConfig tunes an individual probe.
type CheckerConfig struct {
	Timeout time.Duration
}

// DefaultCheckerConfig returns the standard 2 second probe budget.
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{Timeout: 2 * time.Second}
}

// DatabaseChecker returns a health check function for PostgreSQL database
func DatabaseChecker(db *sql.DB) Checker {
	return DatabaseCheckerWithConfig(db, DefaultCheckerConfig())
}

// DatabaseCheckerWithConfig returns a database probe with a custom timeout.
func DatabaseCheckerWithConfig(db *sql.DB, config CheckerConfig) Checker {
	return func() error {
		if db == nil {
			return errors.New("database connection is nil")
		}
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		return db.PingContext(ctx)
	}
}

// RedisChecker returns a health check function for Redis
func RedisChecker(client *redis.Client) Checker {
	return RedisCheckerWithConfig(client, DefaultCheckerConfig())
}

// RedisCheckerWithConfig returns a Redis probe with a custom timeout.
func RedisCheckerWithConfig(client *redis.Client, config CheckerConfig) Checker {
	return func() error {
		if client == nil {
			return errors.New("redis client is nil")
		}
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}

// HTTPEndpointChecker returns a health check function for HTTP endpoints.
// Useful for checking external service dependencies.
func HTTPEndpointChecker(url string) Checker {
	return HTTPEndpointCheckerWithConfig(url, DefaultCheckerConfig())
}

// HTTPEndpointCheckerWithConfig probes an HTTP endpoint. Redirects count as
// healthy; anything 400 and above does not.
func HTTPEndpointCheckerWithConfig(url string, config CheckerConfig) Checker {
	client := &http.Client{
		Timeout: config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return func() error {
		resp, err := client.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("endpoint %s returned status %d", url, resp.StatusCode)
		}
		return nil
	}
}

// GRPCEndpointChecker returns a health check function for gRPC endpoints.
// This is a placeholder - wire the grpc health protocol when a gRPC
// dependency appears.
func GRPCEndpointChecker(target string) Checker {
	return func() error {
		return nil
	}
}

// CompositeChecker runs a named group of probes and reports every failure.
func CompositeChecker(name string, checkers map[string]Checker) Checker {
	return func() error {
		var failures []string
		for key, check := range checkers {
			if err := check(); err != nil {
				failures = append(failures, fmt.Sprintf("%s.%s: %v", name, key, err))
			}
		}
		if len(failures) == 0 {
			return nil
		}
		sort.Strings(failures)
		return errors.New(strings.Join(failures, "; "))
	}
}

// AsyncChecker bounds a probe with a timeout so a hung dependency cannot
// stall the whole health endpoint.
func AsyncChecker(checker Checker, timeout time.Duration) Checker {
	return func() error {
		result := make(chan error, 1)
		go func() {
			result <- checker()
		}()

		select {
		case err := <-result:
			return err
		case <-time.After(timeout):
			return fmt.Errorf("health check timeout after %v", timeout)
		}
	}
}

// CachedChecker memoizes a probe result to keep frequent health polls from
// hammering a dependency.
type CachedChecker struct {
	checker  Checker
	cacheTTL time.Duration

	mu        sync.Mutex
	checked   bool
	lastCheck time.Time
	lastErr   error
}

// NewCachedChecker wraps a probe with a result cache.
func NewCachedChecker(checker Checker, ttl time.Duration) *CachedChecker {
	return &CachedChecker{checker: checker, cacheTTL: ttl}
}

// Check returns the cached result while it is fresh, re-probing otherwise.
// Errors are cached the same as successes.
func (c *CachedChecker) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checked && time.Since(c.lastCheck) < c.cacheTTL {
		return c.lastErr
	}

	c.lastErr = c.checker()
	c.lastCheck = time.Now()
	c.checked = true
	return c.lastErr
}
