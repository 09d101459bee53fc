package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skytrail/tripcast/pkg/resilience"
)

// retryablePgCodes lists SQLSTATE codes worth retrying. Transient conditions
// only: serialization conflicts, lock contention, connection loss, and
// resource exhaustion that a backoff can outwait. Disk full (53100) and out
// of memory (53200) are deliberately absent.
var retryablePgCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
	"53000": {}, // insufficient_resources
	"53300": {}, // too_many_connections
	"53400": {}, // configuration_limit_exceeded
	"08000": {}, // connection_exception
	"08003": {}, // connection_does_not_exist
	"08006": {}, // connection_failure
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
	"58000": {}, // system_error
	"XX000": {}, // internal_error
}

var retryableMessages = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"temporary failure",
	"timeout",
	"too many connections",
	"server closed",
}

// isPostgresRetryable reports whether a failed query is worth another
// attempt. Context cancellation is never retryable; the caller gave up.
func isPostgresRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := retryablePgCodes[pgErr.Code]
		return ok
	}

	if strings.Contains(err.Error(), "unexpected EOF") {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range retryableMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return false
}

// ConservativeRetryConfig returns a retry policy for user-facing queries
// where latency matters more than persistence.
func ConservativeRetryConfig() resilience.RetryConfig {
	cfg := resilience.ConservativeRetryConfig()
	cfg.RetryableChecker = isPostgresRetryable
	return cfg
}

// AggressiveRetryConfig returns a retry policy for background work that can
// afford to wait out longer outages.
func AggressiveRetryConfig() resilience.RetryConfig {
	cfg := resilience.AggressiveRetryConfig()
	cfg.RetryableChecker = isPostgresRetryable
	return cfg
}
