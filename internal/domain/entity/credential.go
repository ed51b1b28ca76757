// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the core entity of the service: one account's login record.
// Username and email are each globally unique; uniqueness is enforced by the
// store, not by application-level checks.
type Credential struct {
	ID           uuid.UUID // The unique identifier of the account.
	Username     string    // Login name, globally unique.
	Email        string    // Contact address, globally unique.
	PasswordHash string    // Salted one-way hash. Never the plaintext, never logged, never returned to callers.
	CreatedAt    time.Time // Timestamp of signup.
	UpdatedAt    time.Time // Timestamp of the last modification (password changes bump this).
}
