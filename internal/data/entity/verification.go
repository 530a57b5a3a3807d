package entity

import (
	"time"
)

// Verification is a single-use password-reset token tied to a user by email.
type Verification struct {
	BaseSimple
	Identifier string    `db:"identifier"`
	Value      string    `db:"value"`
	ExpiresAt  time.Time `db:"expires_at"`
}
