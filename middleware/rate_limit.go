package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/agriance/contractgen/pkg/logger"
	"github.com/gin-gonic/gin"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// ByClientIP counts requests per client address.
func ByClientIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// ByTenant counts requests per authenticated tenant, falling back to the
// client address before AuthMiddleware has run.
func ByTenant(c *gin.Context) string {
	if tenant := GetTenant(c); tenant != "" {
		return "tenant:" + tenant
	}
	return ByClientIP(c)
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter struct {
	mu        sync.Mutex
	counts    map[string]int
	lastReset time.Time
	rate      int           // requests per window
	window    time.Duration // time window
	now       func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts:    make(map[string]int),
		lastReset: time.Now(),
		rate:      rate,
		window:    window,
		now:       time.Now,
	}
}

// Allow records one request for key. When the key is over its limit it
// returns false and the time until the window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastReset) >= l.window {
		clear(l.counts)
		l.lastReset = now
	}

	if l.counts[key] >= l.rate {
		return false, l.lastReset.Add(l.window).Sub(now)
	}
	l.counts[key]++
	return true, 0
}

// RateLimit rejects requests beyond rate per window for each key with 429
// and a Retry-After header. A rate of zero or less disables the limit.
func RateLimit(rate int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	if rate <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(rate, window)

	return func(c *gin.Context) {
		k := key(c)
		ok, retryAfter := limiter.Allow(k)
		if !ok {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "key", k, "path", c.Request.URL.Path)

			seconds := int(retryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
