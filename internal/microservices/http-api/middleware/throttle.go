package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether a hit on key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// Throttle caps calls per caller to an expensive route group. Signed-in callers are keyed
// by user id, anonymous ones by client IP. A limiter failure lets the request through.
func Throttle(limiter Limiter, scope string, limit int, window time.Duration, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		who := c.GetString(ContextUserID)
		if who == "" {
			who = "ip:" + c.ClientIP()
		}

		ok, retryIn, err := limiter.Allow(c.Request.Context(), scope+":"+who, limit, window)
		if err != nil {
			if log != nil {
				log.Warn("throttle_unavailable", "scope", scope, "error", err)
			}
			c.Next()
			return
		}
		if !ok {
			secs := int(math.Ceil(retryIn.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}
