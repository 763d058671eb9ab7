package spectator

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ConnLimiter rate limits websocket upgrades per client IP.
type ConnLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewConnLimiter allows rps upgrades per second per IP with the given burst.
func NewConnLimiter(rps float64, burst int) *ConnLimiter {
	return &ConnLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*limiterEntry),
	}
}

// Allow reports whether ip may open another connection now.
func (l *ConnLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	e, ok := l.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// Cleanup forgets IPs not seen for maxAge. Returns number removed.
func (l *ConnLimiter) Cleanup(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}
