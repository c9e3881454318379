package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"devicemanager.org/internal/auth"
	"devicemanager.org/internal/inventory"
)

func (a *API) handleDevicesCollection(w http.ResponseWriter, r *http.Request) {
	if !a.requirePolicy(w, r, auth.AnyAuthenticated()) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		devices, err := a.inventory.ListDevices(r.Context())
		if err != nil {
			handleInventoryError(w, r, err)
			return
		}
		if devices == nil {
			devices = []inventory.Device{}
		}
		writeJSON(w, http.StatusOK, devices)
	case http.MethodPost:
		var in inventory.DeviceInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		device, err := a.inventory.CreateDevice(r.Context(), in)
		if err != nil {
			handleInventoryError(w, r, err)
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/api/devices/%s", device.ID))
		writeJSON(w, http.StatusCreated, device)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleDeviceResource(w http.ResponseWriter, r *http.Request) {
	if !a.requirePolicy(w, r, auth.AnyAuthenticated()) {
		return
	}
	id, ok := resourceID(w, r, "/api/devices/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		detail, err := a.inventory.GetDevice(r.Context(), id)
		if err != nil {
			handleInventoryError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	case http.MethodPut:
		var in inventory.DeviceInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := a.inventory.UpdateDevice(r.Context(), id, in); err != nil {
			handleInventoryError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if err := a.inventory.DeleteDevice(r.Context(), id); err != nil {
			handleInventoryError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func handleInventoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, inventory.ErrInvalidInput),
		errors.Is(err, inventory.ErrUnknownDeviceType):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
