// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"passgate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// SignUpInput defines the data required to register a new credential.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// ChangePasswordInput carries a verified caller's password change request.
// UserID comes from the caller's token, never from the request body.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Credential  *entity.Credential
}

// SignUpOutput returns the newly created credential. AccessToken is empty
// and ExpiresAt zero when auto-login on signup is disabled.
type SignUpOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Credential  *entity.Credential
}

// WhoamiOutput returns the credential identified by a verified token.
type WhoamiOutput struct {
	Credential *entity.Credential
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	SignUp(ctx context.Context, input SignUpInput) (*SignUpOutput, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	Whoami(ctx context.Context, userID uuid.UUID) (*WhoamiOutput, error)
}
