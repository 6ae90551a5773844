package service

import (
	"fmt"
	"unicode"
)

// DefaultPasswordMinLength is used when PasswordPolicy.MinLength is unset.
const DefaultPasswordMinLength = 8

// PasswordPolicy is the minimum a password must satisfy: a length and at
// least one upper case letter, lower case letter and digit.
type PasswordPolicy struct {
	MinLength int
}

// Check returns an error wrapping ErrWeakPassword describing the first unmet
// rule.
func (p PasswordPolicy) Check(password string) error {
	minLen := p.MinLength
	if minLen <= 0 {
		minLen = DefaultPasswordMinLength
	}

	if len([]rune(password)) < minLen {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minLen)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	switch {
	case !upper:
		return fmt.Errorf("%w: must contain an upper case letter", ErrWeakPassword)
	case !lower:
		return fmt.Errorf("%w: must contain a lower case letter", ErrWeakPassword)
	case !digit:
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	}
	return nil
}
