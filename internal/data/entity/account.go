package entity

import (
	"github.com/google/uuid"
)

const (
	ProviderCredential = "credential"
	ProviderGoogle     = "google"
)

// Account links a User to an auth provider. Credential accounts carry the
// bcrypt password hash, social accounts carry the provider subject id.
type Account struct {
	Base
	UserID       uuid.UUID `db:"user_id"`
	ProviderID   string    `db:"provider_id"`
	AccountID    string    `db:"account_id"`
	PasswordHash *string   `db:"password"`
}
