package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the sign-up identity provider.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the identity provider at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewAdminSession returns a session that sends token as a bearer credential.
func (c *SDKClient) NewAdminSession(token string) *AdminSession {
	return &AdminSession{client: c, token: token}
}
