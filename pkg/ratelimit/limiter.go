package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skytrail/tripcast/pkg/config"
)

// IdentityType distinguishes authenticated callers from anonymous ones.
type IdentityType int

const (
	// IdentityAnonymous is a caller identified only by network address.
	IdentityAnonymous IdentityType = iota
	// IdentityAuthenticated is a caller with a verified identity.
	IdentityAuthenticated
)

// Rule is the effective limit applied to one endpoint/identity combination.
type Rule struct {
	Limit  int
	Burst  int
	Window time.Duration
}

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed      bool
	Remaining    int
	RetryAfter   time.Duration
	Limit        int
	Window       time.Duration
	ResetAfter   time.Duration
	IdentityKey  string
	EndpointKey  string
	IdentityType IdentityType
}

// tokenBucketScript refills Limit tokens per window with Burst headroom.
// Returns {allowed, remaining, retry_after_seconds, reset_after_seconds}.
const tokenBucketScript = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local window = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local capacity = rate + burst
local fill_rate = rate / window

local bucket = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end

local delta = now - ts
if delta < 0 then delta = 0 end
tokens = tokens + delta * fill_rate
if tokens > capacity then tokens = capacity end

local allowed = 0
local retry_after = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after = (1 - tokens) / fill_rate
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now)
redis.call('EXPIRE', key, math.ceil(window * 2))

local reset_after = (capacity - tokens) / fill_rate
return {allowed, tostring(tokens), tostring(retry_after), tostring(reset_after)}
`

// Limiter implements Redis-backed token bucket rate limiting.
type Limiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	script *redis.Script
	now    func() time.Time
}

// NewLimiter creates a limiter bound to a Redis client and config.
func NewLimiter(client *redis.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		client: client,
		cfg:    cfg,
		script: redis.NewScript(tokenBucketScript),
		now:    time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (l *Limiter) WithNow(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// RuleFor resolves the effective rule for an endpoint and identity type.
// Endpoint overrides beat the config defaults; a zero limit in an override
// falls back to the default, a zero burst is a valid override.
func (l *Limiter) RuleFor(endpoint string, identity IdentityType) Rule {
	limit := l.cfg.DefaultLimit
	burst := l.cfg.DefaultBurst
	if identity == IdentityAnonymous {
		limit = l.cfg.AnonymousLimit
		burst = l.cfg.AnonymousBurst
	}
	window := l.cfg.Window()

	if override, ok := l.cfg.EndpointOverrides[endpoint]; ok {
		overrideLimit := override.AuthenticatedLimit
		overrideBurst := override.AuthenticatedBurst
		if identity == IdentityAnonymous {
			overrideLimit = override.AnonymousLimit
			overrideBurst = override.AnonymousBurst
		}
		if overrideLimit > 0 {
			limit = overrideLimit
		}
		burst = overrideBurst
		if override.WindowSeconds > 0 {
			window = time.Duration(override.WindowSeconds) * time.Second
		}
	}

	if burst < 0 {
		burst = 0
	}

	return Rule{Limit: limit, Burst: burst, Window: window}
}

// Allow consumes one token for the identity on the endpoint. A disabled
// limiter and non-positive limits always allow. Redis failures also allow,
// returning the error so callers can log the degradation.
func (l *Limiter) Allow(ctx context.Context, endpoint, identityKey string, rule Rule, identity IdentityType) (Result, error) {
	result := Result{
		Allowed:      true,
		Limit:        rule.Limit,
		Window:       rule.Window,
		IdentityKey:  identityKey,
		EndpointKey:  endpoint,
		IdentityType: identity,
	}

	if !l.cfg.Enabled || rule.Limit <= 0 {
		if rule.Limit > 0 {
			result.Remaining = rule.Limit
		}
		return result, nil
	}

	window := rule.Window
	if window <= 0 {
		window = l.cfg.Window()
		result.Window = window
	}

	key := fmt.Sprintf("%s:%s:%s", l.cfg.RedisPrefix, endpoint, identityKey)
	nowSeconds := float64(l.now().UnixNano()) / float64(time.Second)

	vals, err := l.script.Run(ctx, l.client, []string{key},
		rule.Limit, rule.Burst, window.Seconds(), formatFloat(nowSeconds)).Slice()
	if err != nil {
		result.Remaining = rule.Limit
		return result, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(vals) != 4 {
		result.Remaining = rule.Limit
		return result, fmt.Errorf("rate limit script returned %d values, want 4", len(vals))
	}

	result.Allowed = toInt(vals[0]) == 1
	result.Remaining = int(toFloat(vals[1]))
	result.RetryAfter = time.Duration(toFloat(vals[2]) * float64(time.Second))
	result.ResetAfter = time.Duration(toFloat(vals[3]) * float64(time.Second))
	return result, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 10, 64)
}

func toInt(v interface{}) int {
	switch value := v.(type) {
	case int64:
		return int(value)
	case int:
		return value
	case float64:
		return int(value)
	case string:
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return 0
}

func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case int:
		return float64(value)
	case string:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return 0
}
