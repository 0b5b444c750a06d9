package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiterAllowsWithinQuota(t *testing.T) {
	limiter := NewRateLimiter(5, 100)
	router := newLimitedRouter(limiter)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d rejected with %d", i+1, w.Code)
		}
	}
}

func TestRateLimiterRejectsOverMinuteQuota(t *testing.T) {
	limiter := NewRateLimiter(2, 100)
	router := newLimitedRouter(limiter)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d rejected with %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}
}

func TestRateLimiterHourWindow(t *testing.T) {
	limiter := NewRateLimiter(100, 3)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("pid:alice")
		if !allowed {
			t.Fatalf("request %d should pass", i+1)
		}
	}

	allowed, window := limiter.Allow("pid:alice")
	if allowed {
		t.Fatal("fourth request should be rejected")
	}
	if window != "hour" {
		t.Fatalf("expected hour window, got %q", window)
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(1, 100)

	if allowed, _ := limiter.Allow("pid:alice"); !allowed {
		t.Fatal("alice's first request should pass")
	}
	if allowed, _ := limiter.Allow("pid:alice"); allowed {
		t.Fatal("alice's second request should be rejected")
	}
	if allowed, _ := limiter.Allow("pid:bob"); !allowed {
		t.Fatal("bob should have a separate bucket")
	}
}

func TestPruneStaleDropsIdleBuckets(t *testing.T) {
	limiter := NewRateLimiter(10, 100)

	limiter.Allow("pid:alice")
	limiter.Allow("pid:bob")

	// Age alice's bucket past the cutoff.
	limiter.mu.Lock()
	limiter.buckets["pid:alice"].lastSeen = time.Now().Add(-3 * time.Hour)
	limiter.mu.Unlock()

	dropped := limiter.PruneStale(2 * time.Hour)
	if dropped != 1 {
		t.Fatalf("expected 1 pruned bucket, got %d", dropped)
	}

	limiter.mu.Lock()
	_, aliceKept := limiter.buckets["pid:alice"]
	_, bobKept := limiter.buckets["pid:bob"]
	limiter.mu.Unlock()

	if aliceKept {
		t.Fatal("alice's idle bucket should be gone")
	}
	if !bobKept {
		t.Fatal("bob's active bucket should survive")
	}
}
