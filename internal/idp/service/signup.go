package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/internal/idp/store"
	"github.com/aussiebroadwan/signup/pkg/cryptox"
	"github.com/aussiebroadwan/signup/pkg/idx"
	"github.com/aussiebroadwan/signup/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

// Defaults applied when the corresponding SignUpService field is zero.
const (
	DefaultCodeTTL        = 15 * time.Minute
	DefaultMaxAttempts    = 5
	DefaultResendCooldown = 30 * time.Second
	DefaultUnconfirmedTTL = 7 * 24 * time.Hour
)

var validate = validator.New()

// SignUpService registers accounts and confirms them with emailed codes.
type SignUpService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Sender CodeSender
	Policy PasswordPolicy

	CodeTTL        time.Duration
	MaxAttempts    int
	ResendCooldown time.Duration

	// RequireApproval parks confirmed accounts in awaiting_approval until an
	// operator approves them.
	RequireApproval bool

	// Now and Generate are replaceable in tests.
	Now      func() time.Time
	Generate CodeGenerator
}

// SignUpResult is returned by SignUp.
type SignUpResult struct {
	Account  domain.Account
	Delivery domain.CodeDelivery
}

// ConfirmResult is returned by Confirm. Complete is false when the account
// still needs operator approval.
type ConfirmResult struct {
	Account  domain.Account
	Complete bool
}

// SignUp creates an unconfirmed account and sends it a verification code.
// attributes may carry "email"; the username is used when it is absent.
func (s *SignUpService) SignUp(
	ctx context.Context,
	username string,
	password string,
	attributes map[string]string,
) (SignUpResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	username = strings.TrimSpace(username)
	if username == "" {
		return SignUpResult{}, ErrInvalidUsername
	}

	email := strings.TrimSpace(attributes["email"])
	if email == "" {
		email = username
	}
	if err := validate.Var(email, "required,email"); err != nil {
		log.Debug("sign-up rejected: invalid email", slog.String("username", username))
		return SignUpResult{}, ErrInvalidEmail
	}

	if err := s.Policy.Check(password); err != nil {
		log.Debug("sign-up rejected: weak password", slog.String("username", username))
		return SignUpResult{}, err
	}

	// 2. Reject taken usernames before hashing
	if _, err := s.Store.Accounts().GetAccountByUsername(ctx, username); err == nil {
		log.Warn("sign-up attempted with existing username", slog.String("username", username))
		return SignUpResult{}, ErrUsernameExists
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username", slog.Any("error", err))
		return SignUpResult{}, err
	}

	// 3. Hash password
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return SignUpResult{}, err
	}

	now := s.now()
	account := domain.Account{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.StatusUnconfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. Create account, issue and deliver the first code atomically
	var delivery domain.CodeDelivery
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameExists
			}
			log.Error("failed to create account", slog.Any("error", err))
			return err
		}

		d, err := s.issueCode(ctx, tx, account, now)
		if err != nil {
			return err
		}
		delivery = d
		return nil
	})
	if err != nil {
		return SignUpResult{}, err
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
	)

	return SignUpResult{Account: account, Delivery: delivery}, nil
}

// Confirm checks code against the account's active verification code.
func (s *SignUpService) Confirm(ctx context.Context, username, code string) (ConfirmResult, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	code = strings.TrimSpace(code)
	if username == "" {
		return ConfirmResult{}, ErrInvalidUsername
	}
	if code == "" {
		return ConfirmResult{}, ErrCodeRequired
	}

	now := s.now()
	var (
		result  ConfirmResult
		outcome error // failures that must still commit attempt counters
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Load account
		account, err := s.activeAccount(ctx, tx, username)
		if err != nil {
			return err
		}

		// 2. Load the newest outstanding code
		vc, err := tx.Codes().GetActiveCode(ctx, account.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeExpired
		}
		if err != nil {
			log.Error("failed to load verification code", slog.Any("error", err))
			return err
		}
		if vc.Expired(now) {
			return ErrCodeExpired
		}

		// 3. Enforce the attempt budget
		if vc.Attempts >= s.maxAttempts() {
			if err := tx.Codes().InvalidateCodes(ctx, account.ID, now); err != nil {
				return err
			}
			outcome = ErrTooManyAttempts
			return nil
		}

		// 4. Compare fingerprints
		given := cryptox.FingerprintToken(code)
		if subtle.ConstantTimeCompare([]byte(given), []byte(vc.CodeHash)) != 1 {
			if err := tx.Codes().IncrementAttempts(ctx, vc.ID); err != nil {
				return err
			}
			log.Warn("verification code mismatch",
				slog.String("account_id", account.ID),
				slog.Int("attempts", vc.Attempts+1),
			)
			outcome = ErrCodeMismatch

			if vc.Attempts+1 >= s.maxAttempts() {
				if err := tx.Codes().InvalidateCodes(ctx, account.ID, now); err != nil {
					return err
				}
				outcome = ErrTooManyAttempts
			}
			return nil
		}

		// 5. Consume code and move the account on
		if err := tx.Codes().ConsumeCode(ctx, vc.ID, now); err != nil {
			return err
		}

		status := domain.StatusConfirmed
		if s.RequireApproval {
			status = domain.StatusAwaitingApproval
		}
		if err := tx.Accounts().UpdateStatus(ctx, account.ID, status, &now); err != nil {
			log.Error("failed to update account status", slog.Any("error", err))
			return err
		}

		account.Status = status
		account.ConfirmedAt = &now
		account.UpdatedAt = now
		result = ConfirmResult{Account: account, Complete: status == domain.StatusConfirmed}
		return nil
	})
	if err != nil {
		return ConfirmResult{}, err
	}
	if outcome != nil {
		return ConfirmResult{}, outcome
	}

	log.Info("account confirmed",
		slog.String("account_id", result.Account.ID),
		slog.String("status", string(result.Account.Status)),
	)
	return result, nil
}

// ResendCode replaces any outstanding code with a new one.
func (s *SignUpService) ResendCode(ctx context.Context, username string) (domain.CodeDelivery, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.CodeDelivery{}, ErrInvalidUsername
	}

	now := s.now()
	var delivery domain.CodeDelivery

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := s.activeAccount(ctx, tx, username)
		if err != nil {
			return err
		}

		vc, err := tx.Codes().GetActiveCode(ctx, account.ID)
		switch {
		case err == nil:
			if now.Before(vc.CreatedAt.Add(s.resendCooldown())) {
				return ErrResendTooSoon
			}
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if err := tx.Codes().InvalidateCodes(ctx, account.ID, now); err != nil {
			return err
		}

		delivery, err = s.issueCode(ctx, tx, account, now)
		return err
	})
	if err != nil {
		return domain.CodeDelivery{}, err
	}

	log.Info("verification code resent", slog.String("username", username))
	return delivery, nil
}

// activeAccount loads an account that is still waiting for its code.
func (s *SignUpService) activeAccount(ctx context.Context, tx store.Tx, username string) (domain.Account, error) {
	account, err := tx.Accounts().GetAccountByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}

	switch account.Status {
	case domain.StatusUnconfirmed:
		return account, nil
	case domain.StatusDisabled:
		return domain.Account{}, ErrAccountDisabled
	default:
		return domain.Account{}, ErrAlreadyConfirmed
	}
}

// issueCode stores a fresh code for the account and delivers it.
func (s *SignUpService) issueCode(ctx context.Context, tx store.Tx, account domain.Account, now time.Time) (domain.CodeDelivery, error) {
	log := slogx.FromContext(ctx)

	code, err := s.generate()
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return domain.CodeDelivery{}, err
	}

	vc := domain.VerificationCode{
		ID:          idx.NewAt(now).String(),
		AccountID:   account.ID,
		CodeHash:    cryptox.FingerprintToken(code),
		Destination: account.Email,
		ExpiresAt:   now.Add(s.codeTTL()),
		CreatedAt:   now,
	}
	if err := tx.Codes().CreateCode(ctx, vc); err != nil {
		log.Error("failed to store verification code", slog.Any("error", err))
		return domain.CodeDelivery{}, err
	}

	if err := s.Sender.SendCode(ctx, account.Email, code); err != nil {
		log.Error("failed to deliver verification code",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return domain.CodeDelivery{}, ErrDeliveryFailed
	}

	return domain.CodeDelivery{
		Medium:      domain.MediumEmail,
		Destination: domain.MaskDestination(account.Email),
	}, nil
}

func (s *SignUpService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SignUpService) generate() (string, error) {
	if s.Generate != nil {
		return s.Generate()
	}
	return GenerateVerificationCode()
}

func (s *SignUpService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

func (s *SignUpService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (s *SignUpService) resendCooldown() time.Duration {
	if s.ResendCooldown > 0 {
		return s.ResendCooldown
	}
	return DefaultResendCooldown
}
