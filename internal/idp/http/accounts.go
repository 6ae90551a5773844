package http

import (
	"net/http"

	"github.com/aussiebroadwan/signup/internal/idp/domain"
	"github.com/aussiebroadwan/signup/internal/idp/service"
	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/aussiebroadwan/signup/pkg/httpx"
)

type AccountsHandler struct {
	AccountService *service.AccountService
}

// HandleGet godoc
//
//	@Summary		Get Account
//	@Description	Fetch an account by username (requires accounts:read)
//	@Tags			Accounts
//	@Produce		json
//	@Param			username	path		string					true	"Username"
//	@Success		200			{object}	authsdk.AccountResponse	"account"
//	@Failure		401			{object}	authsdk.ErrorResponse	"invalid_token"
//	@Failure		403			{object}	authsdk.ErrorResponse	"insufficient_scope"
//	@Failure		404			{object}	authsdk.ErrorResponse	"not_found"
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username} [get].
func (h *AccountsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	account, err := h.AccountService.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, "get account", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleApprove godoc
//
//	@Summary		Approve Account
//	@Description	Confirm an account that is awaiting approval (requires accounts:write)
//	@Tags			Accounts
//	@Produce		json
//	@Param			username	path		string					true	"Username"
//	@Success		200			{object}	authsdk.AccountResponse	"account"
//	@Failure		404			{object}	authsdk.ErrorResponse	"not_found"
//	@Failure		409			{object}	authsdk.ErrorResponse	"invalid_state"
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username}/approve [post].
func (h *AccountsHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	account, err := h.AccountService.Approve(r.Context(), r.PathValue("username"), actor(r))
	if err != nil {
		writeServiceError(w, r, "approve account", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleDisable godoc
//
//	@Summary		Disable Account
//	@Description	Disable an account (requires accounts:write)
//	@Tags			Accounts
//	@Produce		json
//	@Param			username	path		string					true	"Username"
//	@Success		200			{object}	authsdk.AccountResponse	"account"
//	@Failure		404			{object}	authsdk.ErrorResponse	"not_found"
//	@Failure		409			{object}	authsdk.ErrorResponse	"invalid_state"
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username}/disable [post].
func (h *AccountsHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	account, err := h.AccountService.Disable(r.Context(), r.PathValue("username"), actor(r))
	if err != nil {
		writeServiceError(w, r, "disable account", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleDelete godoc
//
//	@Summary		Delete Account
//	@Description	Delete an account and its verification codes (requires accounts:write)
//	@Tags			Accounts
//	@Param			username	path	string	true	"Username"
//	@Success		204
//	@Failure		404	{object}	authsdk.ErrorResponse	"not_found"
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username} [delete].
func (h *AccountsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountService.Delete(r.Context(), r.PathValue("username"), actor(r)); err != nil {
		writeServiceError(w, r, "delete account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func actor(r *http.Request) string {
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		return claims.Subject
	}
	return ""
}

func toAccountResponse(a domain.Account) authsdk.AccountResponse {
	return authsdk.AccountResponse{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		Status:      string(a.Status),
		ConfirmedAt: a.ConfirmedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
