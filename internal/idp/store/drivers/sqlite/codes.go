package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/internal/idp/store"
)

type codesRepo struct {
	q *queries
}

func (r *codesRepo) CreateCode(ctx context.Context, c domain.VerificationCode) error {
	err := r.q.CreateCode(ctx, codeRow{
		ID:          c.ID,
		AccountID:   c.AccountID,
		CodeHash:    c.CodeHash,
		Destination: c.Destination,
		Attempts:    int64(c.Attempts),
		ExpiresAt:   toMillis(c.ExpiresAt),
		ConsumedAt:  mapOptionalTime(c.ConsumedAt),
		CreatedAt:   toMillis(c.CreatedAt),
	})
	return mapUniqueViolation(err)
}

func (r *codesRepo) GetActiveCode(ctx context.Context, accountID string) (domain.VerificationCode, error) {
	row, err := r.q.GetActiveCode(ctx, accountID)
	if err != nil {
		return domain.VerificationCode{}, mapNotFound(err)
	}
	return domain.VerificationCode{
		ID:          row.ID,
		AccountID:   row.AccountID,
		CodeHash:    row.CodeHash,
		Destination: row.Destination,
		Attempts:    int(row.Attempts),
		ExpiresAt:   fromMillis(row.ExpiresAt),
		ConsumedAt:  mapNullTimePtr(row.ConsumedAt),
		CreatedAt:   fromMillis(row.CreatedAt),
	}, nil
}

func (r *codesRepo) IncrementAttempts(ctx context.Context, id string) error {
	return r.q.IncrementCodeAttempts(ctx, id)
}

func (r *codesRepo) ConsumeCode(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.ConsumeCode(ctx, id, toMillis(at))
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *codesRepo) InvalidateCodes(ctx context.Context, accountID string, at time.Time) error {
	return r.q.InvalidateCodes(ctx, accountID, toMillis(at))
}

func (r *codesRepo) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredCodes(ctx, toMillis(now))
}
