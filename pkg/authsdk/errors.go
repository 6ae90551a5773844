package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/signup/pkg/httpx"
)

// Error codes returned in the "error" field.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidParameter  = "invalid_parameter"
	ErrorCodeInvalidPassword   = "invalid_password"
	ErrorCodeDuplicateAccount  = "duplicate_account"
	ErrorCodeCodeMismatch      = "code_mismatch"
	ErrorCodeCodeExpired       = "code_expired"
	ErrorCodeTooManyAttempts   = "too_many_attempts"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeAlreadyConfirmed  = "already_confirmed"
	ErrorCodeAccountDisabled   = "account_disabled"
	ErrorCodeInvalidState      = "invalid_state"
	ErrorCodeThrottled         = "throttled"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeServerError       = "server_error"
	ErrorCodeNotReady          = "not_ready"
)

// APIError is an error response from the identity provider. Handlers write
// it; the SDK returns it.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-success response into an *APIError, falling
// back to the status text when the body is not an error document.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        er.Error,
			Description: er.ErrorDescription,
		}
	}

	desc := strings.TrimSpace(string(body))
	if desc == "" || len(desc) > 200 {
		desc = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        codeForStatus(resp.StatusCode),
		Description: desc,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusTooManyRequests:
		return ErrorCodeThrottled
	case http.StatusUnauthorized:
		return ErrorCodeInvalidToken
	case http.StatusForbidden:
		return ErrorCodeInsufficientScope
	case http.StatusBadRequest:
		return ErrorCodeInvalidRequest
	default:
		return ErrorCodeServerError
	}
}
