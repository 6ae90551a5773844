package signup

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrSequence    = errors.New("request out of sequence")
	ErrBusy        = fmt.Errorf("%w: another request is in flight", ErrSequence)
	ErrClosed      = errors.New("coordinator closed")
	ErrUnsupported = errors.New("identity provider does not support this operation")

	// ErrIncomplete is reported when the identity provider accepts a code but
	// does not consider the confirmation complete.
	ErrIncomplete = errors.New("confirmation incomplete")
)

// IdP error codes.
const (
	CodeDuplicateAccount = "duplicate_account"
	CodeInvalidPassword  = "invalid_password"
	CodeInvalidParameter = "invalid_parameter"
	CodeCodeMismatch     = "code_mismatch"
	CodeCodeExpired      = "code_expired"
	CodeTooManyAttempts  = "too_many_attempts"
	CodeNotFound         = "not_found"
	CodeAlreadyConfirmed = "already_confirmed"
	CodeThrottled        = "throttled"
	CodeNetwork          = "network"
	CodeUnknown          = "unknown"
)

// IdPError is a failure reported by the identity provider. Implementations of
// IdentityProvider translate their native errors into it.
type IdPError struct {
	Code   string
	Reason string
	Err    error
}

func (e *IdPError) Error() string {
	if e.Reason == "" {
		return "identity provider: " + e.Code
	}
	return fmt.Sprintf("identity provider: %s: %s", e.Code, e.Reason)
}

func (e *IdPError) Unwrap() error { return e.Err }

// NewIdPError returns an *IdPError with the given code and reason.
func NewIdPError(code, reason string, cause error) *IdPError {
	return &IdPError{Code: code, Reason: reason, Err: cause}
}

// AsIdPError unwraps err to an *IdPError.
func AsIdPError(err error) (*IdPError, bool) {
	var e *IdPError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsIdPCode reports whether err is an *IdPError with the given code.
func IsIdPCode(err error, code string) bool {
	e, ok := AsIdPError(err)
	return ok && e.Code == code
}
