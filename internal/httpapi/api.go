// Package httpapi is the HTTP surface of the device manager: routing,
// middleware, authentication and the JSON handlers.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"devicemanager.org/internal/auth"
	"devicemanager.org/internal/inventory"
	"devicemanager.org/internal/obs"
)

// ReadyProbe reports whether the service can take traffic.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API wires handlers to dependencies.
type API struct {
	mux        *http.ServeMux
	accounts   *auth.Manager
	tokens     *auth.TokenIssuer
	inventory  *inventory.Service
	readyProbe ReadyProbe
	version    string
}

// New builds the router. All dependencies are required except the probe DB.
func New(accounts *auth.Manager, tokens *auth.TokenIssuer, inv *inventory.Service, rp ReadyProbe, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		accounts:   accounts,
		tokens:     tokens,
		inventory:  inv,
		readyProbe: rp,
		version:    version,
	}

	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReady)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/api/auth", a.handleLogin)
	a.mux.HandleFunc("/api/accounts", a.handleAccountsCollection)
	a.mux.HandleFunc("/api/accounts/", a.handleAccountResource)
	a.mux.HandleFunc("/api/devices", a.handleDevicesCollection)
	a.mux.HandleFunc("/api/devices/", a.handleDeviceResource)
	a.mux.HandleFunc("/api/employees", a.handleEmployeesCollection)
	a.mux.HandleFunc("/api/employees/", a.handleEmployeeResource)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the full middleware chain around the router.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, 1<<20)
	h = SecurityHeaders(h)
	h = RateLimit(h, 20, 10)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "devicemanager-api",
		"version": a.version,
	})
}

func (a *API) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.readyProbe.Check(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
