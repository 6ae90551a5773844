package http

import (
	"net/http"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/internal/idp/service"
	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/aussiebroadwan/signup/pkg/httpx"
)

type SignUpHandler struct {
	SignUpService *service.SignUpService
}

// HandleSignUp godoc
//
//	@Summary		Sign-up Endpoint
//	@Description	Register an account and send a verification code to its email address
//	@Tags			Sign-up
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					true	"Username, usually the email address"
//	@Param			password	formData	string					true	"Password"
//	@Param			email		formData	string					false	"Email address; defaults to the username"
//	@Success		201			{object}	authsdk.SignUpResponse	"user_id, confirmed, delivery"
//	@Failure		400			{object}	authsdk.ErrorResponse	"invalid_parameter, invalid_password"
//	@Failure		409			{object}	authsdk.ErrorResponse	"duplicate_account"
//	@Failure		429			{object}	authsdk.ErrorResponse	"throttled"
//	@Router			/v1/signup [post].
func (h *SignUpHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := authsdk.SignUpRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Email:    r.PostFormValue("email"),
	}
	if !validRequest(w, req) {
		return
	}

	res, err := h.SignUpService.SignUp(r.Context(), req.Username, req.Password, map[string]string{
		"email": req.Email,
	})
	if err != nil {
		writeServiceError(w, r, "sign-up", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.SignUpResponse{
		UserID:    res.Account.ID,
		Confirmed: res.Account.Status == domain.StatusConfirmed,
		Delivery:  toDelivery(res.Delivery),
	})
}

// HandleConfirm godoc
//
//	@Summary		Confirm Sign-up Endpoint
//	@Description	Submit the verification code sent at sign-up. complete is false while the account awaits operator approval.
//	@Tags			Sign-up
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string							true	"Username"
//	@Param			code		formData	string							true	"Verification code"
//	@Success		200			{object}	authsdk.ConfirmSignUpResponse	"complete, status"
//	@Failure		400			{object}	authsdk.ErrorResponse			"code_mismatch, code_expired"
//	@Failure		404			{object}	authsdk.ErrorResponse			"not_found"
//	@Failure		409			{object}	authsdk.ErrorResponse			"already_confirmed"
//	@Failure		429			{object}	authsdk.ErrorResponse			"too_many_attempts, throttled"
//	@Router			/v1/signup/confirm [post].
func (h *SignUpHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := authsdk.ConfirmSignUpRequest{
		Username: r.PostFormValue("username"),
		Code:     r.PostFormValue("code"),
	}
	if !validRequest(w, req) {
		return
	}

	res, err := h.SignUpService.Confirm(r.Context(), req.Username, req.Code)
	if err != nil {
		writeServiceError(w, r, "confirm", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ConfirmSignUpResponse{
		Complete: res.Complete,
		Status:   string(res.Account.Status),
	})
}

// HandleResend godoc
//
//	@Summary		Resend Code Endpoint
//	@Description	Replace the outstanding verification code with a new one
//	@Tags			Sign-up
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string						true	"Username"
//	@Success		200			{object}	authsdk.ResendCodeResponse	"delivery"
//	@Failure		404			{object}	authsdk.ErrorResponse		"not_found"
//	@Failure		409			{object}	authsdk.ErrorResponse		"already_confirmed"
//	@Failure		429			{object}	authsdk.ErrorResponse		"throttled"
//	@Router			/v1/signup/resend [post].
func (h *SignUpHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := authsdk.ResendCodeRequest{Username: r.PostFormValue("username")}
	if !validRequest(w, req) {
		return
	}

	delivery, err := h.SignUpService.ResendCode(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, r, "resend", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ResendCodeResponse{Delivery: toDelivery(delivery)})
}

func toDelivery(d domain.CodeDelivery) authsdk.CodeDelivery {
	return authsdk.CodeDelivery{Medium: d.Medium, Destination: d.Destination}
}
