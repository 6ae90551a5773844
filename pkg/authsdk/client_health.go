package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GetLiveness reports whether the identity provider process is serving.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness reports whether the identity provider can take sign-ups. A
// degraded provider answers 503 with its dependency checks; those come back
// together with an *APIError coded not_ready naming the failing check.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var health HealthResponse
	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.Unmarshal(body, &health); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &health, nil

	case http.StatusServiceUnavailable:
		if json.Unmarshal(body, &health) == nil && health.Checks != nil {
			return &health, &APIError{
				StatusCode:  resp.StatusCode,
				Code:        ErrorCodeNotReady,
				Description: "database: " + health.Checks.Database,
			}
		}
	}

	return nil, parseErrorResponse(resp, body)
}

// Ready reports whether the response is healthy and every reported
// dependency check passed.
func (h *HealthResponse) Ready() bool {
	if h == nil || h.Status != "ok" {
		return false
	}
	return h.Checks == nil || h.Checks.Database == "ok"
}
