package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// FixedWindowLimiter counts requests per client key in fixed windows.
// Donation initiation is the only write surface exposed to anonymous
// browsers, so a coarse per-IP limit is enough.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	counts  map[string]int
	limit   int
	window  time.Duration
	resetAt time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		counts:  make(map[string]int),
		limit:   limit,
		window:  window,
		resetAt: time.Now().Add(window),
	}
}

func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if now.After(l.resetAt) {
		l.counts = make(map[string]int)
		l.resetAt = now.Add(l.window)
	}
	if l.counts[key] >= l.limit {
		return false
	}
	l.counts[key]++
	return true
}

// RateLimit limits by client IP.
func RateLimit(limiter *FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
