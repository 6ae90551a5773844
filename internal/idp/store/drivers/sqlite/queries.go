package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type queries struct {
	db dbtx
}

type accountRow struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Status       string
	ConfirmedAt  sql.NullInt64
	CreatedAt    int64
	UpdatedAt    int64
}

const accountColumns = `id, username, email, password_hash, status, confirmed_at, created_at, updated_at`

func scanAccount(row *sql.Row) (accountRow, error) {
	var a accountRow
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Status,
		&a.ConfirmedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

const createAccount = `
INSERT INTO accounts (` + accountColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (q *queries) CreateAccount(ctx context.Context, a accountRow) error {
	_, err := q.db.ExecContext(ctx, createAccount,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		a.Status,
		a.ConfirmedAt,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

const getAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

func (q *queries) GetAccountByID(ctx context.Context, id string) (accountRow, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByID, id))
}

const getAccountByUsername = `SELECT ` + accountColumns + ` FROM accounts WHERE username = ? COLLATE NOCASE`

func (q *queries) GetAccountByUsername(ctx context.Context, username string) (accountRow, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccountByUsername, username))
}

const updateAccountStatus = `
UPDATE accounts
SET status = ?, confirmed_at = ?, updated_at = ?
WHERE id = ?`

func (q *queries) UpdateAccountStatus(ctx context.Context, id, status string, confirmedAt sql.NullInt64, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateAccountStatus, status, confirmedAt, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteAccount = `DELETE FROM accounts WHERE id = ?`

func (q *queries) DeleteAccount(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteStaleUnconfirmed = `DELETE FROM accounts WHERE status = 'unconfirmed' AND created_at < ?`

func (q *queries) DeleteStaleUnconfirmed(ctx context.Context, cutoff int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteStaleUnconfirmed, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countAccounts = `SELECT COUNT(*) FROM accounts`

func (q *queries) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAccounts).Scan(&n)
	return n, err
}

type codeRow struct {
	ID          string
	AccountID   string
	CodeHash    string
	Destination string
	Attempts    int64
	ExpiresAt   int64
	ConsumedAt  sql.NullInt64
	CreatedAt   int64
}

const createCode = `
INSERT INTO verification_codes (id, account_id, code_hash, destination, attempts, expires_at, consumed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (q *queries) CreateCode(ctx context.Context, c codeRow) error {
	_, err := q.db.ExecContext(ctx, createCode,
		c.ID,
		c.AccountID,
		c.CodeHash,
		c.Destination,
		c.Attempts,
		c.ExpiresAt,
		c.ConsumedAt,
		c.CreatedAt,
	)
	return err
}

const getActiveCode = `
SELECT id, account_id, code_hash, destination, attempts, expires_at, consumed_at, created_at
FROM verification_codes
WHERE account_id = ? AND consumed_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT 1`

func (q *queries) GetActiveCode(ctx context.Context, accountID string) (codeRow, error) {
	var c codeRow
	err := q.db.QueryRowContext(ctx, getActiveCode, accountID).Scan(
		&c.ID,
		&c.AccountID,
		&c.CodeHash,
		&c.Destination,
		&c.Attempts,
		&c.ExpiresAt,
		&c.ConsumedAt,
		&c.CreatedAt,
	)
	return c, err
}

const incrementCodeAttempts = `UPDATE verification_codes SET attempts = attempts + 1 WHERE id = ?`

func (q *queries) IncrementCodeAttempts(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, incrementCodeAttempts, id)
	return err
}

const consumeCode = `UPDATE verification_codes SET consumed_at = ? WHERE id = ? AND consumed_at IS NULL`

func (q *queries) ConsumeCode(ctx context.Context, id string, at int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, consumeCode, at, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const invalidateCodes = `UPDATE verification_codes SET consumed_at = ? WHERE account_id = ? AND consumed_at IS NULL`

func (q *queries) InvalidateCodes(ctx context.Context, accountID string, at int64) error {
	_, err := q.db.ExecContext(ctx, invalidateCodes, at, accountID)
	return err
}

const deleteExpiredCodes = `DELETE FROM verification_codes WHERE expires_at <= ? OR consumed_at IS NOT NULL`

func (q *queries) DeleteExpiredCodes(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredCodes, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
