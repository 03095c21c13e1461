package middleware

import (
	"strings"
	"sync"
	"time"
)

// EmailLimiter bounds how often a given email can trigger an action inside a
// sliding window. State is in-process: the limiter protects a single-instance
// deployment where the database is the only shared resource.
type EmailLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewEmailLimiter(max int, window time.Duration) *EmailLimiter {
	return &EmailLimiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records an attempt for the email and reports whether it is within the
// limit. The check and the record are one atomic step.
func (l *EmailLimiter) Allow(email string) bool {
	key := strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}
