package kratos

import (
	"context"
	"fmt"
	"log/slog"

	kratosclient "github.com/ory/kratos-client-go"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/pkg/signup"
)

const (
	statePassedChallenge = "passed_challenge"
	methodPassword       = "password"
	methodCode           = "code"
)

// CreateAccount registers identifier through a native registration flow and
// then starts verification of the email trait, which makes Kratos send a code.
func (p *Provider) CreateAccount(
	ctx context.Context,
	identifier, secret string,
	attributes map[string]string,
) (signup.SignUpReceipt, error) {
	email := attributes["email"]
	if email == "" {
		email = identifier
	}

	flow, httpResp, err := p.api.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return signup.SignUpReceipt{}, p.toIdPError(err, httpResp, "registration_flow_create")
	}

	body := kratosclient.UpdateRegistrationFlowWithPasswordMethod{
		Method:   methodPassword,
		Password: secret,
		Traits:   map[string]interface{}{"email": email},
	}

	res, httpResp, err := p.api.FrontendAPI.
		UpdateRegistrationFlow(ctx).
		Flow(flow.GetId()).
		UpdateRegistrationFlowBody(kratosclient.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		return signup.SignUpReceipt{}, p.toIdPError(err, httpResp, "registration_flow_submit")
	}

	userID := res.GetIdentity().Id
	p.logger.Info("kratos identity registered", slog.String("identity_id", userID))

	delivery, err := p.startVerification(ctx, identifier, email)
	if err != nil {
		return signup.SignUpReceipt{}, err
	}

	return signup.SignUpReceipt{UserID: userID, Delivery: delivery}, nil
}

// ConfirmAccount submits code to the verification flow started for
// identifier. Kratos keeps the flow open after a wrong code.
func (p *Provider) ConfirmAccount(ctx context.Context, identifier, code string) (signup.ConfirmationReceipt, error) {
	flowID, ok := p.flow(identifier)
	if !ok {
		return signup.ConfirmationReceipt{}, signup.NewIdPError(signup.CodeCodeExpired,
			"no verification in progress, request a new code", nil)
	}

	body := kratosclient.UpdateVerificationFlowWithCodeMethod{
		Method: methodCode,
		Code:   &code,
	}

	flow, httpResp, err := p.api.FrontendAPI.
		UpdateVerificationFlow(ctx).
		Flow(flowID).
		UpdateVerificationFlowBody(kratosclient.UpdateVerificationFlowWithCodeMethodAsUpdateVerificationFlowBody(&body)).
		Execute()
	if err != nil {
		return signup.ConfirmationReceipt{}, p.toIdPError(err, httpResp, "verification_flow_submit")
	}

	if fmt.Sprint(flow.GetState()) == statePassedChallenge {
		p.forgetFlow(identifier)
		return signup.ConfirmationReceipt{Complete: true}, nil
	}

	if err := uiError(flow.Ui.GetMessages()); err != nil {
		return signup.ConfirmationReceipt{}, err
	}
	return signup.ConfirmationReceipt{Complete: false}, nil
}

// ResendCode starts a new verification flow, replacing the remembered one.
func (p *Provider) ResendCode(ctx context.Context, identifier string) (signup.CodeDelivery, error) {
	return p.startVerification(ctx, identifier, identifier)
}

func (p *Provider) startVerification(ctx context.Context, identifier, email string) (signup.CodeDelivery, error) {
	flow, httpResp, err := p.api.FrontendAPI.CreateNativeVerificationFlow(ctx).Execute()
	if err != nil {
		return signup.CodeDelivery{}, p.toIdPError(err, httpResp, "verification_flow_create")
	}

	body := kratosclient.UpdateVerificationFlowWithCodeMethod{
		Method: methodCode,
		Email:  &email,
	}

	sent, httpResp, err := p.api.FrontendAPI.
		UpdateVerificationFlow(ctx).
		Flow(flow.GetId()).
		UpdateVerificationFlowBody(kratosclient.UpdateVerificationFlowWithCodeMethodAsUpdateVerificationFlowBody(&body)).
		Execute()
	if err != nil {
		return signup.CodeDelivery{}, p.toIdPError(err, httpResp, "verification_flow_send")
	}
	if err := uiError(sent.Ui.GetMessages()); err != nil {
		return signup.CodeDelivery{}, err
	}

	p.rememberFlow(identifier, sent.GetId())
	p.logger.Debug("kratos verification code sent", slog.String("flow_id", sent.GetId()))

	return signup.CodeDelivery{
		Medium:      domain.MediumEmail,
		Destination: domain.MaskDestination(email),
	}, nil
}
