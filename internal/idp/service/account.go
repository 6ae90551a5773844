package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/internal/idp/store"
	"github.com/aussiebroadwan/signup/pkg/slogx"
)

// AccountService holds the operator actions on accounts.
type AccountService struct {
	Store store.Store
}

// Get returns the account registered under username.
func (s *AccountService) Get(ctx context.Context, username string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	return account, err
}

// Approve confirms an account parked in awaiting_approval.
func (s *AccountService) Approve(ctx context.Context, username, approvedBy string) (domain.Account, error) {
	return s.transition(ctx, username, approvedBy, domain.StatusConfirmed, func(a domain.Account) error {
		if a.Status != domain.StatusAwaitingApproval {
			return ErrInvalidState
		}
		return nil
	})
}

// Disable blocks an account from confirming or signing in.
func (s *AccountService) Disable(ctx context.Context, username, disabledBy string) (domain.Account, error) {
	return s.transition(ctx, username, disabledBy, domain.StatusDisabled, func(a domain.Account) error {
		if a.Status == domain.StatusDisabled {
			return ErrInvalidState
		}
		return nil
	})
}

// Delete removes an account and its codes.
func (s *AccountService) Delete(ctx context.Context, username, deletedBy string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetAccountByUsername(ctx, strings.TrimSpace(username))
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		return tx.Accounts().DeleteAccount(ctx, account.ID)
	})
	if err != nil {
		return err
	}

	log.Info("account deleted",
		slog.String("username", username),
		slog.String("deleted_by", deletedBy),
	)
	return nil
}

func (s *AccountService) transition(
	ctx context.Context,
	username string,
	actor string,
	to domain.AccountStatus,
	allowed func(domain.Account) error,
) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		account, err = tx.Accounts().GetAccountByUsername(ctx, strings.TrimSpace(username))
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		if err := allowed(account); err != nil {
			return err
		}

		now := time.Now().UTC()
		confirmedAt := account.ConfirmedAt
		if to == domain.StatusConfirmed && confirmedAt == nil {
			confirmedAt = &now
		}
		if err := tx.Accounts().UpdateStatus(ctx, account.ID, to, confirmedAt); err != nil {
			return err
		}

		account.Status = to
		account.ConfirmedAt = confirmedAt
		account.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info("account status changed",
		slog.String("account_id", account.ID),
		slog.String("status", string(to)),
		slog.String("actor", actor),
	)
	return account, nil
}
