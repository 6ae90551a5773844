package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SignUp registers username and triggers delivery of a verification code.
// email may be empty, in which case the username is used as the address.
func (c *SDKClient) SignUp(ctx context.Context, username, password, email string) (*SignUpResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	if email != "" {
		form.Set("email", email)
	}

	resp, err := c.postForm(ctx, "/v1/signup", form)
	if err != nil {
		return nil, err
	}

	var out SignUpResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmSignUp submits the verification code for username.
func (c *SDKClient) ConfirmSignUp(ctx context.Context, username, code string) (*ConfirmSignUpResponse, error) {
	resp, err := c.postForm(ctx, "/v1/signup/confirm", url.Values{
		"username": {username},
		"code":     {code},
	})
	if err != nil {
		return nil, err
	}

	var out ConfirmSignUpResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendCode asks for a new verification code for username.
func (c *SDKClient) ResendCode(ctx context.Context, username string) (*ResendCodeResponse, error) {
	resp, err := c.postForm(ctx, "/v1/signup/resend", url.Values{
		"username": {username},
	})
	if err != nil {
		return nil, err
	}

	var out ResendCodeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
