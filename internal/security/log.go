package security

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event kinds recorded by the security log.
const (
	KindAuthFailure     = "auth_failure"
	KindOwnerMismatch   = "owner_mismatch"
	KindPaymentRejected = "payment_rejected"
	KindRateLimited     = "rate_limited"
)

// Event is one security-relevant occurrence.
type Event struct {
	Kind    string    `json:"kind"`
	Address string    `json:"address,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// Log collects security events. It is a process-scoped service with an
// explicit lifecycle: initialized once per process, reset on restart, not
// shared across instances. Tests substitute their own implementation.
type Log interface {
	Record(e Event)
	Recent(n int) []Event
}

type ringLog struct {
	mu     sync.Mutex
	buf    []Event
	next   int
	filled bool
	nowFn  func() time.Time
	logger zerolog.Logger
}

// NewRingLog creates an in-memory Log holding the most recent `size` events.
func NewRingLog(size int, logger zerolog.Logger) Log {
	if size <= 0 {
		size = 256
	}
	return &ringLog{
		buf:    make([]Event, size),
		nowFn:  time.Now,
		logger: logger.With().Str("component", "security").Logger(),
	}
}

func (l *ringLog) Record(e Event) {
	if e.At.IsZero() {
		e.At = l.nowFn()
	}
	l.mu.Lock()
	l.buf[l.next] = e
	l.next = (l.next + 1) % len(l.buf)
	if l.next == 0 {
		l.filled = true
	}
	l.mu.Unlock()

	l.logger.Warn().Str("kind", e.Kind).Str("address", e.Address).Str("detail", e.Detail).Msg("security event")
}

// Recent returns up to n events, newest first.
func (l *ringLog) Recent(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	size := l.next
	if l.filled {
		size = len(l.buf)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.buf)) % len(l.buf)
		out = append(out, l.buf[idx])
	}
	return out
}

// Nop returns a Log that discards everything; used in tests that do not
// assert on security events.
func Nop() Log { return nopLog{} }

type nopLog struct{}

func (nopLog) Record(Event)       {}
func (nopLog) Recent(int) []Event { return nil }
