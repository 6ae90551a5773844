package service

import (
	"encoding/base32"
	"fmt"
	"time"

	"github.com/aussiebroadwan/signup/pkg/cryptox"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// CodeGenerator produces a numeric verification code.
type CodeGenerator func() (string, error)

// GenerateVerificationCode returns a six digit HOTP code computed from a fresh
// random secret. The secret is discarded; only the code's fingerprint is
// stored.
func GenerateVerificationCode() (string, error) {
	raw, err := cryptox.GenerateSecret(20)
	if err != nil {
		return "", err
	}
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)

	code, err := hotp.GenerateCodeCustom(secret, uint64(time.Now().UnixNano()), hotp.ValidateOpts{ // #nosec G115 - positive
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return code, nil
}
