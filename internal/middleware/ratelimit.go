package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"backr/internal/security"

	"golang.org/x/time/rate"
)

// RateLimiter decides whether a request identified by key may proceed. It is
// injectable so tests can substitute a fake with a controllable clock.
type RateLimiter interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a process-scoped per-key token-bucket limiter. Counters
// live in process memory: they reset on restart and are not shared across
// horizontally scaled instances.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	nowFn    func() time.Time
}

// NewIPRateLimiter creates a limiter allowing rps requests per second with
// the given burst per key.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		nowFn:    time.Now,
	}
}

func (l *IPRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.nowFn()
	l.mu.Unlock()
	return v.limiter.Allow()
}

// Cleanup drops keys idle longer than maxIdle. Run it periodically from a
// goroutine; it returns the number of evicted keys.
func (l *IPRateLimiter) Cleanup(maxIdle time.Duration) int {
	now := l.nowFn()
	l.mu.Lock()
	defer l.mu.Unlock()
	evicted := 0
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > maxIdle {
			delete(l.visitors, key)
			evicted++
		}
	}
	return evicted
}

// CleanupLoop runs Cleanup every interval until stop is closed.
func (l *IPRateLimiter) CleanupLoop(interval, maxIdle time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			l.Cleanup(maxIdle)
		}
	}
}

// RateLimitMiddleware rejects requests whose client IP exceeds the limit.
func RateLimitMiddleware(limiter RateLimiter, seclog security.Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.Header.Get("X-Forwarded-For")
			if ip == "" {
				ip, _, _ = net.SplitHostPort(r.RemoteAddr)
			}
			if !limiter.Allow(ip) {
				seclog.Record(security.Event{Kind: security.KindRateLimited, Detail: ip})
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
