package postgres

import (
	"strings"

	"passgate/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error checking

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// pgLib does not enable GORM error translation, so fall back to the
	// PostgreSQL error text (SQLSTATE 23505).
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "23505")
}

// uniqueViolationError maps a unique-constraint violation to the matching
// repository error using the violated index name. The index names are fixed
// by the model tags on CredentialModel.
func uniqueViolationError(err error) error {
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "idx_credentials_username"):
		return repository.ErrUsernameTaken
	case strings.Contains(errMsg, "idx_credentials_email"):
		return repository.ErrEmailTaken
	default:
		// Unique violation on an index we do not know about; surface it.
		return errors.Wrap(err, "unexpected unique constraint violation")
	}
}
