// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrCorruptHash is returned by Verify when the stored hash cannot be parsed.
// A corrupt record must fail verification cleanly, never crash the caller.
var ErrCorruptHash = errors.New("stored password hash is malformed")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying algorithm (bcrypt, argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted one-way hash from a plaintext password. The salt
	// is freshly random per call, so two hashes of the same input differ.
	Hash(password string) (string, error)

	// Verify recomputes the hash using the salt embedded in the stored value
	// and compares in constant time. Returns (false, ErrCorruptHash) when the
	// stored value is unparseable.
	Verify(password, hash string) (bool, error)
}
