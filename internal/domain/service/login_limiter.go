package service

import "context"

// LoginLimiter throttles failed login attempts per username over a sliding
// window. Once the threshold is exceeded the username stays blocked until the
// window elapses, regardless of whether later attempts carry the correct
// password.
//
// The interface takes a context so the in-process implementation can be
// swapped for an external TTL key-value store when the service runs as
// multiple instances.
type LoginLimiter interface {
	// Allow reports whether a login attempt for the username may proceed.
	Allow(ctx context.Context, username string) (bool, error)

	// RecordFailure registers one failed attempt for the username.
	RecordFailure(ctx context.Context, username string) error

	// Reset clears the failure state after a successful login.
	Reset(ctx context.Context, username string) error
}
