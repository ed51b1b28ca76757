package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"passgate/config"
	"passgate/internal/domain/service"
)

// jwtIssuer implements service.TokenIssuer using HS256-signed JWTs.
// Tokens are self-contained: identity claims plus expiry, bound by the MAC so
// a client cannot forge another account's session without the secret.
type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer constructs the token issuer from config. The signing secret is
// required; refusing to start beats silently minting forgeable tokens.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.Auth == nil || cfg.Auth.TokenSecret == "" {
		return nil, errors.New("auth.tokenSecret must be provided")
	}

	return &jwtIssuer{
		secret: []byte(cfg.Auth.TokenSecret),
		ttl:    cfg.Auth.TokenTTL,
	}, nil
}

// Issue creates a signed token for the given identity, valid for the
// configured TTL from now.
func (s *jwtIssuer) Issue(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

// Verify validates signature and expiry and returns the embedded claims.
func (s *jwtIssuer) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !token.Valid {
		return nil, service.ErrTokenSignatureInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}
	claims.UserID = userID

	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *jwtIssuer) TTL() time.Duration {
	return s.ttl
}

// mapTokenError folds jwt library failures into the domain's three
// verification outcomes. The library verifies the signature before claim
// validity, so a tampered token reports InvalidSignature even when it is
// also stale.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrSignatureInvalid):
		return service.ErrTokenSignatureInvalid
	default:
		return service.ErrTokenMalformed
	}
}
