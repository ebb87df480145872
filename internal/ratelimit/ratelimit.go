// Package ratelimit bounds outbound request volume per external service.
// The public APIs the monitor polls are free tiers; staying under their
// limits matters more than completeness of any one run.
package ratelimit

import (
	"sync"
	"time"

	"github.com/damiri/vetwatch/internal/logger"
)

// Limiter counts requests per service within a reset window.
type Limiter struct {
	mu         sync.Mutex
	counts     map[string]int
	maxPer     int
	totalCount int
	maxTotal   int
	resetTime  time.Time
	window     time.Duration
}

// New creates a limiter allowing maxPer requests per service and maxTotal
// across all services per window. Zero disables the respective cap.
func New(maxPer, maxTotal int, window time.Duration) *Limiter {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Limiter{
		counts:    make(map[string]int),
		maxPer:    maxPer,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(window),
		window:    window,
	}
}

// Allow reports whether one more request to service fits the budget, and
// counts it when it does.
func (l *Limiter) Allow(service string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()

	if l.maxPer > 0 && l.counts[service] >= l.maxPer {
		logger.Warn("request limit reached", "service", service, "count", l.counts[service], "max", l.maxPer)
		return false
	}
	if l.maxTotal > 0 && l.totalCount >= l.maxTotal {
		logger.Warn("total request limit reached", "count", l.totalCount, "max", l.maxTotal)
		return false
	}

	l.counts[service]++
	l.totalCount++
	return true
}

// Stats returns the per-service request counts for the current window.
func (l *Limiter) Stats() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]int, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}

func (l *Limiter) checkReset() {
	if time.Now().Before(l.resetTime) {
		return
	}
	l.counts = make(map[string]int)
	l.totalCount = 0
	l.resetTime = time.Now().Add(l.window)
}
