package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
)

// Limit messages, one per gate
const (
	GeneralLimitMessage = "Too many requests from this IP, please try again later."
	AuthLimitMessage    = "Too many authentication attempts, please try again later."
	OTPLimitMessage     = "Too many OTP requests, please try again later."
)

// RateLimitRule describes one gate. Name separates the counters of gates
// that share a limiter.
type RateLimitRule struct {
	Name    string
	Max     int
	Window  time.Duration
	Message string
}

// RateLimit returns middleware that counts requests per client IP under the
// rule. A limiter error lets the request through.
func RateLimit(limiter domain.RateLimiter, rule RateLimitRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rule.Name + ":" + c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(ctx, key, rule.Max, rule.Window)
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable", "rule", rule.Name, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			abortWith(c, http.StatusTooManyRequests, rule.Message)
			return
		}
		c.Next()
	}
}
