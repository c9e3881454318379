package auth

import "context"

// AccountStore describes persistence operations required by the account
// subsystem. Implementations surface infrastructure failures as
// ErrStoreUnavailable (wrapped), missing rows as ErrAccountNotFound, and
// username unique-index violations on Insert as ErrUsernameTaken; the
// store's constraint is the final arbiter under concurrent creation.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Account, error)
}

// RoleStore resolves roles by name and seeds the defaults.
type RoleStore interface {
	FindByName(ctx context.Context, name string) (*Role, error)
	// EnsureSeeded creates each named role if absent. Idempotent; concurrent
	// callers racing on first start must not fail on the duplicate insert.
	EnsureSeeded(ctx context.Context, names []string) error
}

// EmployeeDirectory is consulted before account creation.
type EmployeeDirectory interface {
	Exists(ctx context.Context, employeeID string) (bool, error)
	HasAccount(ctx context.Context, employeeID string) (bool, error)
}
