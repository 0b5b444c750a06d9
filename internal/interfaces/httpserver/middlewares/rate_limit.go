package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/metrics"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

// token bucket refilled continuously at capacity/window.
type rateBucket struct {
	tokens     float64
	lastRefill time.Time
}

func (b *rateBucket) take(now time.Time, capacity float64, window time.Duration) bool {
	elapsed := now.Sub(b.lastRefill).Seconds()
	rate := capacity / window.Seconds()
	b.tokens = minFloat(capacity, b.tokens+elapsed*rate)
	b.lastRefill = now
	if b.tokens < 1 {
		return false
	}
	b.tokens -= 1
	return true
}

type userBuckets struct {
	minute   rateBucket
	hour     rateBucket
	lastSeen time.Time
}

// RateLimiter enforces per-user request quotas over two windows. Both
// windows must have capacity for a request to pass. Buckets live in
// memory keyed by user id (or client IP before authentication) and are
// pruned by a scheduled job.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*userBuckets
	perMinute float64
	perHour   float64
}

func NewRateLimiter(perMinute, perHour int) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*userBuckets),
		perMinute: float64(perMinute),
		perHour:   float64(perHour),
	}
}

// Allow reports whether a request for key may proceed now. On rejection
// it names the exhausted window.
func (rl *RateLimiter) Allow(key string) (bool, string) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = &userBuckets{
			minute: rateBucket{tokens: rl.perMinute, lastRefill: now},
			hour:   rateBucket{tokens: rl.perHour, lastRefill: now},
		}
		rl.buckets[key] = bucket
	}
	bucket.lastSeen = now

	if !bucket.minute.take(now, rl.perMinute, time.Minute) {
		return false, "minute"
	}
	if !bucket.hour.take(now, rl.perHour, time.Hour) {
		// Refund the minute token so a burst after the hour window
		// recovers does not double-charge.
		bucket.minute.tokens = minFloat(rl.perMinute, bucket.minute.tokens+1)
		return false, "hour"
	}
	return true, ""
}

// PruneStale drops buckets idle longer than maxIdle and returns how
// many were removed.
func (rl *RateLimiter) PruneStale(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	dropped := 0
	for key, bucket := range rl.buckets {
		if bucket.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
			dropped++
		}
	}
	return dropped
}

// Middleware applies the limiter to incoming requests.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateKey(c)

		allowed, window := rl.Allow(key)
		if !allowed {
			metrics.RecordRateLimited(window)
			retryAfter := "60"
			if window == "hour" {
				retryAfter = "3600"
			}
			c.Header("Retry-After", retryAfter)
			c.JSON(http.StatusTooManyRequests, platformerrors.HTTPErrorResponse{
				Error: &platformerrors.HTTPErrorDetail{
					Message:   "Too many requests. Please slow down.",
					Type:      "rate_limited_error",
					RequestID: RequestIDFromContext(c),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func rateKey(c *gin.Context) string {
	if principal, ok := PrincipalFromContext(c); ok && principal.ID != "" {
		return "pid:" + principal.ID
	}
	ip := clientIP(c.ClientIP())
	if ip != "" {
		return "ip:" + ip
	}
	return "anonymous"
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return ""
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
