package auth

import (
	"sync"
	"time"
)

// AttemptLimiter counts failed password attempts per account and blocks an
// account for a fixed duration once the limit is reached.
type AttemptLimiter struct {
	max   int
	block time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[int64]*attempts
}

type attempts struct {
	failed       int
	blockedUntil time.Time
}

// NewAttemptLimiter allows max failures before blocking for block.
func NewAttemptLimiter(max int, block time.Duration) *AttemptLimiter {
	if max < 1 {
		max = 1
	}
	return &AttemptLimiter{
		max:     max,
		block:   block,
		now:     time.Now,
		entries: make(map[int64]*attempts),
	}
}

// Blocked reports whether key is blocked and for how much longer.
func (l *AttemptLimiter) Blocked(key int64) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || e.blockedUntil.IsZero() {
		return 0, false
	}
	remaining := e.blockedUntil.Sub(l.now())
	if remaining <= 0 {
		delete(l.entries, key)
		return 0, false
	}
	return remaining, true
}

// Fail records a failed attempt. It returns the attempts left before a
// block, or the block duration when this failure triggered one.
func (l *AttemptLimiter) Fail(key int64) (left int, blockedFor time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &attempts{}
		l.entries[key] = e
	}
	if !e.blockedUntil.IsZero() && l.now().After(e.blockedUntil) {
		*e = attempts{}
	}

	e.failed++
	if e.failed >= l.max {
		e.failed = 0
		e.blockedUntil = l.now().Add(l.block)
		return 0, l.block
	}
	return l.max - e.failed, 0
}

// Reset forgets all failures of key.
func (l *AttemptLimiter) Reset(key int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}
