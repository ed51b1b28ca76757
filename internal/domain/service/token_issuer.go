package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failures. Issue/Verify implementations must map their
// library-specific errors onto exactly these three.
var (
	// ErrTokenExpired is returned when the token's expiry is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignatureInvalid is returned when the signature does not match the claims.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenMalformed is returned when the token cannot be parsed at all.
	ErrTokenMalformed = errors.New("token is malformed")
)

// Claims is the identity assertion carried by a session token.
type Claims struct {
	UserID   uuid.UUID `json:"-"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed, time-bounded session tokens.
// Tokens are stateless: verification needs no server-side lookup, only the
// signing secret, and is safe to call concurrently without bound.
type TokenIssuer interface {
	// Issue creates a signed token asserting the given identity, valid from
	// now until now plus the configured TTL.
	Issue(userID uuid.UUID, username string) (string, error)

	// Verify validates the signature and expiry and returns the claims.
	// It is pure and side-effect-free.
	Verify(token string) (*Claims, error)

	// TTL returns the configured token lifetime.
	TTL() time.Duration
}
