package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per client key.
// Buckets idle for longer than expirationTime are dropped.
type UserRateLimiter struct {
	limiters       map[string]*entry
	mu             sync.Mutex
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
	lastSweep      time.Time
	now            func() time.Time
}

func New(requestsPerSecond float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*entry),
		rate:           rate.Limit(requestsPerSecond),
		burst:          burst,
		expirationTime: expirationTime,
		lastSweep:      time.Now(),
		now:            time.Now,
	}
}

// Allow reports whether a request from key may proceed and consumes a token if so.
func (l *UserRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// sweep runs at most once per expiration period. Caller holds mu.
func (l *UserRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expirationTime {
		return
	}
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.expirationTime {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
