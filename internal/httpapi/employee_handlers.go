package httpapi

import (
	"net/http"
	"strings"

	"devicemanager.org/internal/auth"
	"devicemanager.org/internal/ids"
	"devicemanager.org/internal/inventory"
)

func (a *API) handleEmployeesCollection(w http.ResponseWriter, r *http.Request) {
	if !a.requirePolicy(w, r, auth.AnyAuthenticated()) {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	employees, err := a.inventory.ListEmployees(r.Context())
	if err != nil {
		handleInventoryError(w, r, err)
		return
	}
	if employees == nil {
		employees = []inventory.EmployeeSummary{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (a *API) handleEmployeeResource(w http.ResponseWriter, r *http.Request) {
	if !a.requirePolicy(w, r, auth.AnyAuthenticated()) {
		return
	}
	id, ok := resourceID(w, r, "/api/employees/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		detail, err := a.inventory.GetEmployee(r.Context(), id)
		if err != nil {
			handleInventoryError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	case http.MethodPut:
		var upd inventory.EmployeeUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := a.inventory.UpdateEmployee(r.Context(), id, upd); err != nil {
			handleInventoryError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

// resourceID extracts the trailing id segment under prefix. Malformed or
// non-ULID ids never reach the store; the response is the same 404 a
// missing row would produce.
func resourceID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if id == "" || strings.Contains(id, "/") || !ids.Valid(id) {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return "", false
	}
	return id, true
}
