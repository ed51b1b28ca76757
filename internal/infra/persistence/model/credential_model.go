// Package model holds the GORM persistence models backing the domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel mirrors the 'credentials' table. PostgreSQL generates UUIDs
// via gen_random_uuid(). The named unique indexes matter: constraint
// violations are mapped back to taken-username/taken-email failures by index
// name, which is what makes concurrent duplicate signups lose cleanly.
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_credentials_username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_credentials_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}
