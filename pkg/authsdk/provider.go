package authsdk

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/signup/pkg/signup"
)

// Provider implements signup.IdentityProvider and signup.CodeResender on top
// of an SDKClient.
type Provider struct {
	Client *SDKClient
}

var (
	_ signup.IdentityProvider = (*Provider)(nil)
	_ signup.CodeResender     = (*Provider)(nil)
)

func NewProvider(client *SDKClient) *Provider {
	return &Provider{Client: client}
}

func (p *Provider) CreateAccount(
	ctx context.Context,
	identifier, secret string,
	attributes map[string]string,
) (signup.SignUpReceipt, error) {
	res, err := p.Client.SignUp(ctx, identifier, secret, attributes["email"])
	if err != nil {
		return signup.SignUpReceipt{}, toIdPError(err)
	}
	return signup.SignUpReceipt{
		UserID:   res.UserID,
		Delivery: signup.CodeDelivery(res.Delivery),
	}, nil
}

func (p *Provider) ConfirmAccount(ctx context.Context, identifier, code string) (signup.ConfirmationReceipt, error) {
	res, err := p.Client.ConfirmSignUp(ctx, identifier, code)
	if err != nil {
		return signup.ConfirmationReceipt{}, toIdPError(err)
	}
	return signup.ConfirmationReceipt{Complete: res.Complete}, nil
}

func (p *Provider) ResendCode(ctx context.Context, identifier string) (signup.CodeDelivery, error) {
	res, err := p.Client.ResendCode(ctx, identifier)
	if err != nil {
		return signup.CodeDelivery{}, toIdPError(err)
	}
	return signup.CodeDelivery(res.Delivery), nil
}

// idpCodes maps wire error codes onto identity provider error codes.
var idpCodes = map[string]string{
	ErrorCodeDuplicateAccount: signup.CodeDuplicateAccount,
	ErrorCodeInvalidPassword:  signup.CodeInvalidPassword,
	ErrorCodeInvalidParameter: signup.CodeInvalidParameter,
	ErrorCodeInvalidRequest:   signup.CodeInvalidParameter,
	ErrorCodeCodeMismatch:     signup.CodeCodeMismatch,
	ErrorCodeCodeExpired:      signup.CodeCodeExpired,
	ErrorCodeTooManyAttempts:  signup.CodeTooManyAttempts,
	ErrorCodeNotFound:         signup.CodeNotFound,
	ErrorCodeAlreadyConfirmed: signup.CodeAlreadyConfirmed,
	ErrorCodeThrottled:        signup.CodeThrottled,
}

func toIdPError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		code, ok := idpCodes[apiErr.Code]
		if !ok {
			code = signup.CodeUnknown
		}
		reason := apiErr.Description
		if reason == "" {
			reason = apiErr.Code
		}
		return signup.NewIdPError(code, reason, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return signup.NewIdPError(signup.CodeNetwork, "identity provider did not respond in time", err)
	}
	return signup.NewIdPError(signup.CodeNetwork, "identity provider unreachable", err)
}
