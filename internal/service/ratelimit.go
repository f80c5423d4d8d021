package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a key's limiter survives without traffic.
const idleTTL = 10 * time.Minute

// RateLimiter is an in-memory per-key rate limiter. It is safe for
// concurrent use. Idle keys are swept lazily on Allow.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

type keyLimiter struct {
	lim  *rate.Limiter
	last time.Time
}

// NewRateLimiter allows bursts of up to burst events per key, refilling at
// perSecond events per second. A zero rate never refills.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*keyLimiter),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// Allow reports whether key may proceed now, consuming one event if so.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > idleTTL/2 {
		rl.sweep(now)
	}

	kl, ok := rl.limiters[key]
	if !ok {
		kl = &keyLimiter{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = kl
	}
	kl.last = now
	return kl.lim.AllowN(now, 1)
}

func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-idleTTL)
	for key, kl := range rl.limiters {
		if kl.last.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}
