// Package pg implements the store interfaces on PostgreSQL via the pgx
// stdlib driver.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"devicemanager.org/internal/auth"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// Store bundles the per-entity stores over one connection pool.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and configures the pool.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return New(db), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool for readiness probes and shutdown.
func (s *Store) DB() *sql.DB { return s.db }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the pool.
func (s *Store) Close() error { return s.db.Close() }

// Accounts returns the account store.
func (s *Store) Accounts() *AccountStore { return &AccountStore{db: s.db} }

// Roles returns the role store.
func (s *Store) Roles() *RoleStore { return &RoleStore{db: s.db} }

// Employees returns the employee directory.
func (s *Store) Employees() *EmployeeDirectory { return &EmployeeDirectory{db: s.db} }

// Inventory returns the device/employee inventory store.
func (s *Store) Inventory() *InventoryStore { return &InventoryStore{db: s.db} }

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// storeErr wraps driver-level failures so callers can match
// auth.ErrStoreUnavailable without seeing internal detail.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", auth.ErrStoreUnavailable, op, err)
}
