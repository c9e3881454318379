package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"devicemanager.org/internal/auth"
	"devicemanager.org/internal/config"
	"devicemanager.org/internal/httpapi"
	"devicemanager.org/internal/inventory"
	"devicemanager.org/internal/obs"
	"devicemanager.org/internal/store/pg"
)

var version = "0.3.1"

func main() {
	obs.Init()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := pg.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenLifetime)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}
	accounts, err := auth.NewManager(store.Accounts(), store.Roles(), store.Employees(), issuer)
	if err != nil {
		log.Fatalf("account manager: %v", err)
	}
	inv, err := inventory.NewService(store.Inventory())
	if err != nil {
		log.Fatalf("inventory: %v", err)
	}

	// Seed the role table so the first admin can be provisioned right away.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accounts.EnsureDefaultRoles(seedCtx); err != nil {
		cancelSeed()
		log.Fatalf("seed roles: %v", err)
	}
	cancelSeed()
	obs.LogEvent("info", "default roles ensured", map[string]any{"roles": auth.DefaultRoles})

	api := httpapi.New(accounts, issuer, inv, httpapi.ReadyProbe{DB: store.DB()}, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting devicemanager-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = store.Close()
	log.Println("Stopped")
}
