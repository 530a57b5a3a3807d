package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Base
	UserID    uuid.UUID `db:"user_id"`
	Token     uuid.UUID `db:"token"`
	IPAddress *string   `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	ExpiresAt time.Time `db:"expires_at"`
}
