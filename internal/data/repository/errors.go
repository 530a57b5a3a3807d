package repository

import "errors"

// Domain-level failures repositories report without leaking SQL details.
var (
	ErrNotFound      = errors.New("record not found")
	ErrQuotaExceeded = errors.New("owner quota exceeded")
	ErrDuplicate     = errors.New("duplicate unique value")
)
