package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/ratelimit"
	"go.uber.org/zap"
)

// RateLimit enforces per-IP rate limits on the wrapped routes. The API is
// unauthenticated, so every caller is limited by client address. Redis
// failures fail open.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		rule := limiter.RuleFor(endpoint, ratelimit.IdentityAnonymous)
		result, err := limiter.Allow(c.Request.Context(), endpoint, c.ClientIP(), rule, ratelimit.IdentityAnonymous)
		if err != nil {
			logger.WithContext(c.Request.Context()).Warn("rate limiter degraded, allowing request",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			c.Writer.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			common.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
