package signup

import "context"

// IdentityProvider creates and confirms accounts.
type IdentityProvider interface {
	// CreateAccount registers identifier with secret and sends a verification
	// code. attributes carries profile values such as "email".
	CreateAccount(ctx context.Context, identifier, secret string, attributes map[string]string) (SignUpReceipt, error)

	// ConfirmAccount submits the verification code for identifier.
	ConfirmAccount(ctx context.Context, identifier, code string) (ConfirmationReceipt, error)
}

// CodeResender is implemented by identity providers that can send a fresh
// verification code.
type CodeResender interface {
	ResendCode(ctx context.Context, identifier string) (CodeDelivery, error)
}

// Navigator receives every published outcome.
type Navigator interface {
	OnSignUpOutcome(Outcome)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Outcome)

func (f NavigatorFunc) OnSignUpOutcome(o Outcome) { f(o) }

type discardNavigator struct{}

func (discardNavigator) OnSignUpOutcome(Outcome) {}
