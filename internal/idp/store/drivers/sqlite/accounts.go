package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/internal/idp/store"
)

type accountsRepo struct {
	q *queries
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, accountRow{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Status:       string(a.Status),
		ConfirmedAt:  mapOptionalTime(a.ConfirmedAt),
		CreatedAt:    toMillis(a.CreatedAt),
		UpdatedAt:    toMillis(a.UpdatedAt),
	})
	return mapUniqueViolation(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	row, err := r.q.GetAccountByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, confirmedAt *time.Time) error {
	n, err := r.q.UpdateAccountStatus(ctx, id, string(status), mapOptionalTime(confirmedAt), toMillis(time.Now()))
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	n, err := r.q.DeleteAccount(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) DeleteStaleUnconfirmed(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteStaleUnconfirmed(ctx, toMillis(cutoff))
}

func (r *accountsRepo) CountAccounts(ctx context.Context) (int64, error) {
	return r.q.CountAccounts(ctx)
}

func mapAccount(row accountRow) domain.Account {
	return domain.Account{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Status:       domain.AccountStatus(row.Status),
		ConfirmedAt:  mapNullTimePtr(row.ConfirmedAt),
		CreatedAt:    fromMillis(row.CreatedAt),
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}
}
