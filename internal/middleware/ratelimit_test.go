package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backr/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiterBurst(t *testing.T) {
	l := NewIPRateLimiter(1, 3)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")

	assert.True(t, l.Allow("10.0.0.2"), "keys do not share buckets")
}

func TestIPRateLimiterCleanup(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")

	now = now.Add(30 * time.Second)
	l.Allow("10.0.0.2")

	now = now.Add(time.Minute)
	evicted := l.Cleanup(75 * time.Second)
	assert.Equal(t, 1, evicted, "only the idle key is dropped")
	assert.Len(t, l.visitors, 1)
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string) bool { return true }

func TestRateLimitMiddlewareRejects(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RateLimitMiddleware(denyAllLimiter{}, security.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitMiddlewarePasses(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RateLimitMiddleware(allowAllLimiter{}, security.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type recordingLimiter struct {
	keys []string
}

func (r *recordingLimiter) Allow(key string) bool {
	r.keys = append(r.keys, key)
	return true
}

func TestRateLimitMiddlewareKeysOnForwardedFor(t *testing.T) {
	limiter := &recordingLimiter{}
	h := RateLimitMiddleware(limiter, security.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "203.0.113.7", limiter.keys[0])
}
