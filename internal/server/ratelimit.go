package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default submission limits per client address.
const (
	DefaultRequestsPerMinute = 6
	DefaultBurst             = 3
)

// ClientLimiter keeps one token bucket per client key.
type ClientLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewClientLimiter creates a limiter allowing reqPerMin submissions per
// minute with the given burst. Non-positive values fall back to the defaults.
func NewClientLimiter(reqPerMin, burst int) *ClientLimiter {
	if reqPerMin <= 0 {
		reqPerMin = DefaultRequestsPerMinute
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &ClientLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(reqPerMin)),
		burst:    burst,
	}
}

// Allow reports whether key may submit now, consuming a token if so.
func (l *ClientLimiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

// AllowAt is Allow evaluated at t.
func (l *ClientLimiter) AllowAt(key string, t time.Time) bool {
	return l.getLimiter(key).AllowN(t, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}

// Prune drops limiters that have refilled completely by now, so idle
// clients do not accumulate.
func (l *ClientLimiter) Prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, limiter := range l.limiters {
		if limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

func (l *ClientLimiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double check after taking the write lock.
	if limiter, exists = l.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.limit, l.burst)
	l.limiters[key] = limiter
	return limiter
}
