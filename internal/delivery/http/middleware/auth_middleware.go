package middleware

import (
	"strings"

	domainerrors "passgate/internal/domain/errors"
	"passgate/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
)

// AuthMiddleware verifies the bearer token on protected routes.
type AuthMiddleware struct {
	tokenIssuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenIssuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokenIssuer: tokenIssuer}
}

// Authenticate validates the token and puts the caller's identity on the
// context. Verification failures keep their distinct expiry/signature/
// malformed classification all the way to the response.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrTokenMalformed.WrapMessage("Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrTokenMalformed.WrapMessage("Authorization header must use the Bearer scheme")
		}

		claims, err := m.tokenIssuer.Verify(tokenString)
		if err != nil {
			return mapVerifyError(err)
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)

		return next(c)
	}
}

func mapVerifyError(err error) error {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return domainerrors.ErrTokenExpired
	case errors.Is(err, service.ErrTokenSignatureInvalid):
		return domainerrors.ErrInvalidSignature
	default:
		return domainerrors.ErrTokenMalformed
	}
}
