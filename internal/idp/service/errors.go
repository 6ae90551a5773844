package service

import "errors"

var (
	ErrInvalidUsername  = errors.New("username is required")
	ErrInvalidEmail     = errors.New("email is not a valid address")
	ErrWeakPassword     = errors.New("password does not meet the password policy")
	ErrUsernameExists   = errors.New("duplicate account")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountDisabled  = errors.New("account is disabled")
	ErrAlreadyConfirmed = errors.New("account is already confirmed")
	ErrCodeRequired     = errors.New("verification code is required")
	ErrCodeMismatch     = errors.New("verification code does not match")
	ErrCodeExpired      = errors.New("verification code has expired")
	ErrTooManyAttempts  = errors.New("too many failed attempts, request a new code")
	ErrResendTooSoon    = errors.New("a code was sent recently, try again shortly")
	ErrDeliveryFailed   = errors.New("verification code could not be delivered")
	ErrInvalidState     = errors.New("account is not in a state that allows this change")
)
