package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/resilience"
)

// ClientInterface captures the cache operations callers depend on, so tests
// can substitute a mock.
type ClientInterface interface {
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// Client wraps the Redis client
type Client struct {
	*redis.Client
}

// NewRedisClient creates a new Redis client with default timeouts
func NewRedisClient(cfg *config.RedisConfig) (*Client, error) {
	return NewRedisClientWithTimeouts(cfg, nil)
}

// NewRedisClientWithTimeouts creates a Redis client with explicit read and
// write deadlines. A nil timeouts falls back to the package defaults.
func NewRedisClientWithTimeouts(cfg *config.RedisConfig, timeouts *config.TimeoutConfig) (*Client, error) {
	readTimeout := config.DefaultRedisReadTimeoutDuration()
	writeTimeout := config.DefaultRedisWriteTimeoutDuration()
	if timeouts != nil {
		readTimeout = timeouts.RedisReadTimeoutDuration()
		writeTimeout = timeouts.RedisWriteTimeoutDuration()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// SetWithExpiration sets a key-value pair with expiration
func (c *Client) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Set(ctx, key, value, expiration).Err()
}

// GetString gets a string value by key
func (c *Client) GetString(ctx context.Context, key string) (string, error) {
	return c.Get(ctx, key).Result()
}

// Delete deletes a key
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Del(ctx, keys...).Err()
}

// Exists checks if a key exists
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	result, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// Close closes the Redis client
func (c *Client) Close() error {
	return c.Client.Close()
}

// retryableRedisMessages marks transient failures: network trouble, cluster
// topology changes, and server-side conditions that clear on their own.
var retryableRedisMessages = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"temporary failure",
	"timeout",
	"server closed",
	"unexpected eof",
	"pool timeout",
	"i/o timeout",
	"connection pool exhausted",
	"loading",
	"busy",
	"masterdown",
	"readonly",
	"noscript",
	"cluster",
	"moved",
	"ask",
	"tryagain",
	"clusterdown",
}

// nonRetryableRedisMessages marks programming and configuration errors that
// no amount of retrying will fix.
var nonRetryableRedisMessages = []string{
	"wrongtype",
	"err syntax",
	"err invalid",
	"noauth",
	"wrongpass",
	"noperm",
	"err unknown",
	"execabort",
}

// isRedisRetryable reports whether a failed Redis call is worth another
// attempt. Unknown errors default to retryable since Redis hiccups are
// usually transient.
func isRedisRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Key not found is an expected outcome, not a failure.
	if errors.Is(err, redis.Nil) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range retryableRedisMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	for _, fragment := range nonRetryableRedisMessages {
		if strings.Contains(msg, fragment) {
			return false
		}
	}

	return true
}

// ConservativeRetryConfig returns a retry policy for latency-sensitive cache
// reads. Backoffs stay short so a cache miss path is not slower than the
// upstream it shields.
func ConservativeRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:       2,
		InitialBackoff:    50 * time.Millisecond,
		MaxBackoff:        1 * time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
		RetryableChecker:  isRedisRetryable,
	}
}

// AggressiveRetryConfig returns a retry policy for cache writes where losing
// the entry costs a recompute later.
func AggressiveRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:       4,
		InitialBackoff:    20 * time.Millisecond,
		MaxBackoff:        500 * time.Millisecond,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
		RetryableChecker:  isRedisRetryable,
	}
}

// RetryableOperation runs a typed Redis operation under the conservative
// retry policy and preserves the operation's result type.
func RetryableOperation[T any](ctx context.Context, operation func(context.Context) (T, error), name string) (T, error) {
	var zero T

	result, err := resilience.Retry(ctx, ConservativeRetryConfig(), func(ctx context.Context) (interface{}, error) {
		return operation(ctx)
	})
	if err != nil {
		return zero, err
	}

	value, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type for %s", name)
	}
	return value, nil
}
