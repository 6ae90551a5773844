package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/signup/internal/idp/service"
	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/aussiebroadwan/signup/pkg/slogx"
)

// serviceErrors maps service errors onto wire errors. The description is the
// service error text unless a fixed one is set.
var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrInvalidUsername, http.StatusBadRequest, authsdk.ErrorCodeInvalidParameter},
	{service.ErrInvalidEmail, http.StatusBadRequest, authsdk.ErrorCodeInvalidParameter},
	{service.ErrCodeRequired, http.StatusBadRequest, authsdk.ErrorCodeInvalidParameter},
	{service.ErrWeakPassword, http.StatusBadRequest, authsdk.ErrorCodeInvalidPassword},
	{service.ErrUsernameExists, http.StatusConflict, authsdk.ErrorCodeDuplicateAccount},
	{service.ErrAccountNotFound, http.StatusNotFound, authsdk.ErrorCodeNotFound},
	{service.ErrAccountDisabled, http.StatusForbidden, authsdk.ErrorCodeAccountDisabled},
	{service.ErrAlreadyConfirmed, http.StatusConflict, authsdk.ErrorCodeAlreadyConfirmed},
	{service.ErrCodeMismatch, http.StatusBadRequest, authsdk.ErrorCodeCodeMismatch},
	{service.ErrCodeExpired, http.StatusBadRequest, authsdk.ErrorCodeCodeExpired},
	{service.ErrTooManyAttempts, http.StatusTooManyRequests, authsdk.ErrorCodeTooManyAttempts},
	{service.ErrResendTooSoon, http.StatusTooManyRequests, authsdk.ErrorCodeThrottled},
	{service.ErrInvalidState, http.StatusConflict, authsdk.ErrorCodeInvalidState},
	{service.ErrDeliveryFailed, http.StatusBadGateway, authsdk.ErrorCodeServerError},
}

// writeServiceError writes the wire error for err, logging anything that is
// not a known service error.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			authsdk.NewAPIError(m.status, m.code, err.Error()).WriteError(w)
			return
		}
	}

	slogx.FromContext(r.Context()).Error(op+" failed", "error", err)
	authsdk.ErrServerError.WriteError(w)
}
