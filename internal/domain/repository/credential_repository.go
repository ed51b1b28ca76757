// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passgate/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for credential persistence. The application layer
// matches on these instead of database-specific errors. The taken-errors are
// produced from store-level unique constraints, so a concurrent duplicate
// signup loses deterministically instead of racing a check-then-insert.
var (
	// ErrCredentialNotFound is returned when no credential matches the lookup.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrUsernameTaken is returned when an insert collides on the username unique index.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when an insert collides on the email unique index.
	ErrEmailTaken = errors.New("email already exists")
)

// CredentialRepository defines the standard operations for credential persistence.
// Implementations must keep every operation atomic with respect to the
// username/email uniqueness invariants.
type CredentialRepository interface {
	// FindByID retrieves a single credential by account ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Credential, error)

	// FindByUsername retrieves a single credential by its unique username.
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)

	// FindByEmail retrieves a single credential by its unique email.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Create persists a new credential, allocating its ID. Unique-index
	// collisions surface as ErrUsernameTaken or ErrEmailTaken.
	Create(ctx context.Context, cred *entity.Credential) error

	// UpdatePasswordHash atomically replaces the stored hash for one account.
	// Concurrent readers see either the old hash or the new one, never a
	// partial write.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}
