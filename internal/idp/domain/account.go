package domain

import "time"

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusUnconfirmed      AccountStatus = "unconfirmed"
	StatusAwaitingApproval AccountStatus = "awaiting_approval"
	StatusConfirmed        AccountStatus = "confirmed"
	StatusDisabled         AccountStatus = "disabled"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case StatusUnconfirmed, StatusAwaitingApproval, StatusConfirmed, StatusDisabled:
		return true
	}
	return false
}

type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string        // argon2 encoded
	Status       AccountStatus
	ConfirmedAt  *time.Time    // set once the verification code is accepted
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
