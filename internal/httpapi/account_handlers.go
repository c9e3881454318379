package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"devicemanager.org/internal/audit"
	"devicemanager.org/internal/auth"
)

type createAccountRequest struct {
	EmployeeID string `json:"employee_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	RoleName   string `json:"role_name"`
}

type updateAccountRequest struct {
	RoleName    string `json:"role_name"`
	NewPassword string `json:"new_password"`
}

func (a *API) handleAccountsCollection(w http.ResponseWriter, r *http.Request) {
	if !a.requirePolicy(w, r, auth.AdminOnly) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.listAccounts(w, r)
	case http.MethodPost:
		a.createAccount(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAccountResource(w http.ResponseWriter, r *http.Request) {
	if !a.requirePolicy(w, r, auth.AdminOnly) {
		return
	}
	id, ok := resourceID(w, r, "/api/accounts/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getAccount(w, r, id)
	case http.MethodPut:
		a.updateAccount(w, r, id)
	case http.MethodDelete:
		a.deleteAccount(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.accounts.ListAccounts(r.Context())
	if err != nil {
		handleAccountError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []auth.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (a *API) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := a.accounts.CreateAccount(r.Context(), auth.CreateAccountParams{
		EmployeeID: req.EmployeeID,
		Username:   req.Username,
		Password:   req.Password,
		RoleName:   req.RoleName,
	})
	if err != nil {
		handleAccountError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "account.create", map[string]any{
		"account_id": summary.ID,
		"username":   summary.Username,
		"role":       summary.RoleName,
	})
	w.Header().Set("Location", fmt.Sprintf("/api/accounts/%s", summary.ID))
	writeJSON(w, http.StatusCreated, summary)
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request, id string) {
	summary, err := a.accounts.GetAccount(r.Context(), id)
	if err != nil {
		handleAccountError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) updateAccount(w http.ResponseWriter, r *http.Request, id string) {
	var req updateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.accounts.UpdateAccount(r.Context(), id, req.RoleName, req.NewPassword); err != nil {
		handleAccountError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "account.update", map[string]any{
		"account_id": id,
		"role":       req.RoleName,
		"rotated":    strings.TrimSpace(req.NewPassword) != "",
	})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteAccount(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.accounts.DeleteAccount(r.Context(), id); err != nil {
		handleAccountError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "account.delete", map[string]any{"account_id": id})
	w.WriteHeader(http.StatusNoContent)
}

// handleAccountError maps the account taxonomy onto HTTP statuses.
// Validation and reference failures carry their message; everything else is
// an opaque server error.
func handleAccountError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrEmployeeNotFound),
		errors.Is(err, auth.ErrRoleNotFound),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidUsername):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, auth.ErrEmployeeHasAccount):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrAccountNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
