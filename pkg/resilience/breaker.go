package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"github.com/skytrail/tripcast/pkg/logger"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when the breaker rejects an operation.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Settings configures a circuit breaker.
type Settings struct {
	Name             string
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	SuccessThreshold uint32
}

// CircuitBreaker wraps gobreaker with metrics and an optional fallback.
type CircuitBreaker struct {
	name     string
	cb       *gobreaker.CircuitBreaker
	fallback FallbackFunc
}

// NewCircuitBreaker creates a breaker from settings. A nil fallback returns
// ErrCircuitOpen when the breaker is open.
func NewCircuitBreaker(settings Settings, fallback FallbackFunc) *CircuitBreaker {
	name := nextBreakerName(settings.Name)

	failureThreshold := settings.FailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 5
	}
	maxRequests := settings.SuccessThreshold
	if maxRequests == 0 {
		maxRequests = 1
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(n string, from, to gobreaker.State) {
			recordBreakerStateChange(n, from, to)
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", n),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	breaker := &CircuitBreaker{
		name:     name,
		cb:       gobreaker.NewCircuitBreaker(st),
		fallback: fallback,
	}
	recordBreakerState(name, gobreaker.StateClosed)
	return breaker
}

// Name returns the breaker's metric label.
func (b *CircuitBreaker) Name() string {
	return b.name
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// Execute runs the operation through the breaker. When the breaker is open
// the fallback decides the result.
func (b *CircuitBreaker) Execute(ctx context.Context, operation Operation) (interface{}, error) {
	breakerRequestsTotal.WithLabelValues(b.name).Inc()

	result, err := b.cb.Execute(func() (interface{}, error) {
		return operation(ctx)
	})
	if err == nil {
		recordBreakerState(b.name, b.cb.State())
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		breakerFallbacksTotal.WithLabelValues(b.name).Inc()
		recordBreakerState(b.name, b.cb.State())
		if b.fallback != nil {
			return b.fallback(ctx, err)
		}
		return nil, ErrCircuitOpen
	}

	breakerFailuresTotal.WithLabelValues(b.name).Inc()
	recordBreakerState(b.name, b.cb.State())
	return nil, err
}
