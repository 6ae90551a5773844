package domain

import "time"

// VerificationCode is a single-use code sent to confirm an account. Only the
// SHA-256 fingerprint of the code is stored.
type VerificationCode struct {
	ID          string
	AccountID   string
	CodeHash    string
	Destination string
	Attempts    int
	ExpiresAt   time.Time
	ConsumedAt  *time.Time
	CreatedAt   time.Time
}

// Expired reports whether the code is past its expiry at now.
func (c VerificationCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Consumed reports whether the code was used or invalidated.
func (c VerificationCode) Consumed() bool {
	return c.ConsumedAt != nil
}
