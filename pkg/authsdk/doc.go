/*
Package authsdk provides a client SDK for the sign-up identity provider.

# Overview

The package is organized around three types:

  - SDKClient: the public sign-up endpoints and health checks
  - AdminSession: operator endpoints, authenticated with an admin bearer token
  - Provider: adapts an SDKClient to signup.IdentityProvider so a
    signup.Coordinator can drive the identity provider directly

Register and confirm an account:

	client := authsdk.NewSDKClient("http://localhost:8080")

	res, err := client.SignUp(ctx, "a@example.com", "Secret123", "a@example.com")
	// a code is sent to res.Delivery.Destination

	conf, err := client.ConfirmSignUp(ctx, "a@example.com", "123456")
	if !conf.Complete {
		// the account waits for operator approval
	}

Drive the same flow through a coordinator:

	coord := signup.NewCoordinator(authsdk.NewProvider(client), nav)

Operator actions need a token minted with the identity provider's admin
secret (see pkg/jwtx):

	admin := client.NewAdminSession(token)
	account, err := admin.ApproveAccount(ctx, "a@example.com")

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the error code from the response body:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == authsdk.ErrorCodeDuplicateAccount {
		// choose another username
	}

Provider translates these into *signup.IdPError values.
*/
package authsdk
