package authsdk

import "time"

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	// Error is the machine readable code, e.g. "duplicate_account"
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Sign-up
// ============================================================================

// SignUpRequest is the form accepted by POST /v1/signup.
type SignUpRequest struct {
	Username string `validate:"required,max=254"`
	Password string `validate:"required,max=1024"`
	Email    string `validate:"omitempty,email,max=254"`
}

// CodeDelivery describes where a verification code was sent.
type CodeDelivery struct {
	// Medium is how the code was sent, e.g. "email"
	Medium string `json:"medium"`

	// Destination is the masked address, e.g. "a***@example.com"
	Destination string `json:"destination"`
}

// SignUpResponse is returned by POST /v1/signup.
type SignUpResponse struct {
	UserID    string       `json:"user_id"`
	Confirmed bool         `json:"confirmed"`
	Delivery  CodeDelivery `json:"delivery"`
}

// ConfirmSignUpRequest is the form accepted by POST /v1/signup/confirm.
type ConfirmSignUpRequest struct {
	Username string `validate:"required,max=254"`
	Code     string `validate:"required,max=32"`
}

// ConfirmSignUpResponse is returned by POST /v1/signup/confirm.
type ConfirmSignUpResponse struct {
	// Complete is true once the account can sign in. It stays false while the
	// account waits for operator approval.
	Complete bool `json:"complete"`

	// Status is the account status after confirmation
	Status string `json:"status"`
}

// ResendCodeRequest is the form accepted by POST /v1/signup/resend.
type ResendCodeRequest struct {
	Username string `validate:"required,max=254"`
}

// ResendCodeResponse is returned by POST /v1/signup/resend.
type ResendCodeResponse struct {
	Delivery CodeDelivery `json:"delivery"`
}

// ============================================================================
// Accounts
// ============================================================================

// AccountResponse is the operator view of an account.
type AccountResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
