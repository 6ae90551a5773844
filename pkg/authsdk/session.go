package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// AdminSession performs operator requests with an admin bearer token.
type AdminSession struct {
	client *SDKClient
	token  string
}

// GetAccount fetches an account (requires accounts:read).
func (s *AdminSession) GetAccount(ctx context.Context, username string) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, accountPath(username))
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveAccount confirms an account awaiting approval (requires accounts:write).
func (s *AdminSession) ApproveAccount(ctx context.Context, username string) (*AccountResponse, error) {
	return s.post(ctx, accountPath(username)+"/approve")
}

// DisableAccount disables an account (requires accounts:write).
func (s *AdminSession) DisableAccount(ctx context.Context, username string) (*AccountResponse, error) {
	return s.post(ctx, accountPath(username)+"/disable")
}

// DeleteAccount removes an account (requires accounts:write).
func (s *AdminSession) DeleteAccount(ctx context.Context, username string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, accountPath(username))
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *AdminSession) post(ctx context.Context, path string) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path)
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func accountPath(username string) string {
	return "/v1/accounts/" + url.PathEscape(username)
}
