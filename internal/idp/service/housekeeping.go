package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/store"
)

// HousekeepingService periodically deletes spent verification codes and
// accounts that were never confirmed.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	UnconfirmedTTL time.Duration
}

// NewHousekeepingService returns a housekeeping service. A non-positive
// interval defaults to one hour and a non-positive ttl to DefaultUnconfirmedTTL.
func NewHousekeepingService(s store.Store, logger *slog.Logger, interval, unconfirmedTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if unconfirmedTTL <= 0 {
		unconfirmedTTL = DefaultUnconfirmedTTL
	}

	return &HousekeepingService{
		Store:          s,
		Logger:         logger,
		Interval:       interval,
		UnconfirmedTTL: unconfirmedTTL,
	}
}

// Run cleans up immediately and then on every tick until ctx is done.
func (s *HousekeepingService) Run(ctx context.Context) error {
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
	defer s.Logger.Info("housekeeping service stopped")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(ctx)

	for {
		select {
		case <-ticker.C:
			s.Cleanup(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Cleanup runs one pass. Each deletion is independent; a failure in one does
// not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := time.Now().UTC()

	codes, err := s.Store.Codes().DeleteExpiredCodes(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired verification codes", "error", err)
	}

	accounts, err := s.Store.Accounts().DeleteStaleUnconfirmed(ctx, now.Add(-s.UnconfirmedTTL))
	if err != nil {
		s.Logger.Error("failed to delete stale unconfirmed accounts", "error", err)
	}

	remaining, err := s.Store.Accounts().CountAccounts(ctx)
	if err != nil {
		s.Logger.Error("failed to count accounts", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"deleted_codes", codes,
		"deleted_accounts", accounts,
		"accounts", remaining,
	)
}
