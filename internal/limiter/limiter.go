// Package limiter implements per-client fixed-window rate limiting for the
// chat endpoint. It is an approximate, single-process limiter intended for
// abuse mitigation, not billing-grade accounting.
package limiter

import (
	"sync"
	"time"
)

// Config holds the limiter parameters.
type Config struct {
	Window      time.Duration `yaml:"window"`
	MaxRequests int           `yaml:"max_requests"`
}

// defaults fills zero values with the stock limits: 15 requests per minute.
func (c *Config) defaults() {
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	if c.MaxRequests <= 0 {
		c.MaxRequests = 15
	}
}

// window tracks one identity's request count within the current fixed window.
type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window request counter keyed by client identity.
// The read-check-write sequence for one identity happens under a single
// lock acquisition, so concurrent requests cannot undercount.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	config  Config
	now     func() time.Time
}

// New creates a limiter. Zero-value fields in cfg are replaced with defaults.
func New(cfg Config) *Limiter {
	cfg.defaults()
	return &Limiter{
		windows: make(map[string]*window),
		config:  cfg,
		now:     time.Now,
	}
}

// Allow reports whether a request from the given identity is admitted.
// The first request in a window (or the first after the window expires)
// resets the counter to 1 and is always admitted.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[identity]
	if !ok || now.After(w.resetAt) {
		l.windows[identity] = &window{count: 1, resetAt: now.Add(l.config.Window)}
		return true
	}

	if w.count >= l.config.MaxRequests {
		return false
	}

	w.count++
	return true
}

// Sweep removes windows whose reset time passed more than grace ago and
// returns the number of identities evicted. Run periodically so the map
// does not grow without bound.
func (l *Limiter) Sweep(grace time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-grace)
	evicted := 0
	for identity, w := range l.windows {
		if w.resetAt.Before(cutoff) {
			delete(l.windows, identity)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked identities.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// MaxRequests returns the configured per-window request cap.
func (l *Limiter) MaxRequests() int {
	return l.config.MaxRequests
}
