package core

import (
	"sync"

	"golang.org/x/time/rate"
)

// GenerateLimiter rate limits guide generation per user. Limiters are kept
// per user id so one teacher hammering generate cannot starve the rest.
type GenerateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	perMinute int
}

func NewGenerateLimiter(perMinute int) *GenerateLimiter {
	return &GenerateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		perMinute: perMinute,
	}
}

func (l *GenerateLimiter) Allow(userID string) bool {
	if l.perMinute <= 0 {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(l.perMinute)/60), l.perMinute)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
