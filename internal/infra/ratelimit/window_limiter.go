// Package ratelimit throttles failed login attempts per username.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"passgate/config"
	"passgate/internal/domain/service"
)

// windowLimiter is an in-process sliding-window implementation of
// service.LoginLimiter. Failure timestamps are kept per username and pruned
// as the window slides; a username with more than maxAttempts failures inside
// the window is blocked until the oldest failure ages out.
//
// State is process-local. Running multiple service instances needs an
// external TTL key-value store behind the same interface.
type windowLimiter struct {
	mu          sync.Mutex
	failures    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewWindowLimiter builds the limiter from the auth config.
func NewWindowLimiter(cfg *config.Config) service.LoginLimiter {
	return &windowLimiter{
		failures:    make(map[string][]time.Time),
		maxAttempts: cfg.Auth.MaxFailedAttempts,
		window:      cfg.Auth.FailureWindow,
		now:         time.Now,
	}
}

// Allow reports whether a login attempt for the username may proceed.
func (l *windowLimiter) Allow(_ context.Context, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.prune(username)) < l.maxAttempts, nil
}

// RecordFailure registers one failed attempt for the username.
func (l *windowLimiter) RecordFailure(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures[username] = append(l.prune(username), l.now())

	return nil
}

// Reset clears the failure state after a successful login.
func (l *windowLimiter) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, username)

	return nil
}

// prune drops failures older than the window and returns what remains.
// Callers must hold l.mu.
func (l *windowLimiter) prune(username string) []time.Time {
	cutoff := l.now().Add(-l.window)
	kept := l.failures[username][:0]
	for _, at := range l.failures[username] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) == 0 {
		delete(l.failures, username)

		return nil
	}
	l.failures[username] = kept

	return kept
}
