package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by drivers. Repositories
// hang off it so a transaction exposes the same surface as the store.
type Store interface {
	Accounts() Accounts
	Codes() Codes

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account. Returns ErrAlreadyExists when the
	// username is taken (case-insensitive).
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByUsername matches case-insensitively.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// UpdateStatus sets status and confirmed_at and bumps updated_at.
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, confirmedAt *time.Time) error

	// DeleteAccount cascades to verification codes.
	DeleteAccount(ctx context.Context, id string) error

	// DeleteStaleUnconfirmed removes unconfirmed accounts created before cutoff.
	DeleteStaleUnconfirmed(ctx context.Context, cutoff time.Time) (int64, error)

	CountAccounts(ctx context.Context) (int64, error)
}

type Codes interface {
	CreateCode(ctx context.Context, c domain.VerificationCode) error

	// GetActiveCode returns the newest unconsumed code for the account, which
	// may already be expired.
	GetActiveCode(ctx context.Context, accountID string) (domain.VerificationCode, error)

	IncrementAttempts(ctx context.Context, id string) error

	// ConsumeCode marks a code used. Returns ErrNotFound if it was already
	// consumed.
	ConsumeCode(ctx context.Context, id string, at time.Time) error

	// InvalidateCodes consumes every outstanding code for the account.
	InvalidateCodes(ctx context.Context, accountID string, at time.Time) error

	// DeleteExpiredCodes removes codes that expired or were consumed before now.
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}
