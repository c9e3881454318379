package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"devicemanager.org/internal/ids"
)

const (
	usernameMaxLength = 100
	passwordMinLength = 12
)

// Manager orchestrates the account lifecycle: creation, role changes,
// password rotation, deletion and login. It holds no cross-request state;
// the stores are the single source of truth.
type Manager struct {
	accounts  AccountStore
	roles     RoleStore
	employees EmployeeDirectory
	tokens    *TokenIssuer
	now       func() time.Time
}

// ManagerOption configures Manager behavior.
type ManagerOption func(*Manager)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.now = fn
		}
	}
}

// NewManager constructs a Manager. All collaborators are required.
func NewManager(accounts AccountStore, roles RoleStore, employees EmployeeDirectory, tokens *TokenIssuer, opts ...ManagerOption) (*Manager, error) {
	if accounts == nil || roles == nil || employees == nil {
		return nil, errors.New("auth: account store, role store and employee directory are required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token issuer is required")
	}
	m := &Manager{
		accounts:  accounts,
		roles:     roles,
		employees: employees,
		tokens:    tokens,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// EnsureDefaultRoles seeds the {"Admin","User"} role set. Safe to call on
// every startup; racing process instances resolve through the role-name
// unique constraint.
func (m *Manager) EnsureDefaultRoles(ctx context.Context) error {
	return m.roles.EnsureSeeded(ctx, DefaultRoles)
}

// CreateAccountParams are the inputs to CreateAccount. RoleName defaults to
// "User" when blank.
type CreateAccountParams struct {
	EmployeeID string
	Username   string
	Password   string
	RoleName   string
}

// CreateAccount provisions a new account bound to an existing employee and
// role. The employee relationship is one-to-one: a second account for the
// same employee fails with ErrEmployeeHasAccount.
func (m *Manager) CreateAccount(ctx context.Context, p CreateAccountParams) (Summary, error) {
	exists, err := m.employees.Exists(ctx, p.EmployeeID)
	if err != nil {
		return Summary{}, err
	}
	if !exists {
		return Summary{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, p.EmployeeID)
	}

	hasAccount, err := m.employees.HasAccount(ctx, p.EmployeeID)
	if err != nil {
		return Summary{}, err
	}
	if hasAccount {
		return Summary{}, ErrEmployeeHasAccount
	}

	taken, err := m.accounts.ExistsByUsername(ctx, p.Username)
	if err != nil {
		return Summary{}, err
	}
	if taken {
		return Summary{}, ErrUsernameTaken
	}

	roleName := strings.TrimSpace(p.RoleName)
	if roleName == "" {
		roleName = RoleUser
	}
	role, err := m.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return Summary{}, fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		return Summary{}, err
	}

	if err := validateUsername(p.Username); err != nil {
		return Summary{}, err
	}
	if err := validatePassword(p.Password); err != nil {
		return Summary{}, err
	}

	hash, salt, err := HashPassword(p.Password)
	if err != nil {
		return Summary{}, err
	}

	account := &Account{
		ID:           ids.New(),
		Username:     p.Username,
		PasswordHash: hash,
		PasswordSalt: salt,
		EmployeeID:   p.EmployeeID,
		RoleID:       role.ID,
		RoleName:     role.Name,
	}
	// The existence check above can race with a concurrent create; the
	// store's unique index decides, surfacing ErrUsernameTaken here.
	if err := m.accounts.Insert(ctx, account); err != nil {
		return Summary{}, err
	}
	return account.Summary(), nil
}

// UpdateAccount reassigns the role and, when newPassword is non-blank,
// rotates the credential. Hash and salt are replaced together, never
// independently.
func (m *Manager) UpdateAccount(ctx context.Context, accountID, roleName, newPassword string) error {
	account, err := m.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	role, err := m.roles.FindByName(ctx, strings.TrimSpace(roleName))
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		return err
	}
	if strings.TrimSpace(newPassword) != "" {
		if err := validatePassword(newPassword); err != nil {
			return err
		}
		hash, salt, err := HashPassword(newPassword)
		if err != nil {
			return err
		}
		account.PasswordHash = hash
		account.PasswordSalt = salt
	}
	account.RoleID = role.ID
	account.RoleName = role.Name
	return m.accounts.Update(ctx, account)
}

// DeleteAccount removes the account row. The linked employee record is
// untouched.
func (m *Manager) DeleteAccount(ctx context.Context, accountID string) error {
	return m.accounts.Delete(ctx, accountID)
}

// GetAccount returns the safe projection of an account.
func (m *Manager) GetAccount(ctx context.Context, accountID string) (Summary, error) {
	account, err := m.accounts.FindByID(ctx, accountID)
	if err != nil {
		return Summary{}, err
	}
	return account.Summary(), nil
}

// ListAccounts returns safe projections of all accounts.
func (m *Manager) ListAccounts(ctx context.Context) ([]Summary, error) {
	accounts, err := m.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, a.Summary())
	}
	return summaries, nil
}

// Login verifies credentials and mints a session token. Unknown username
// and wrong password return the same ErrUnauthorized; the miss path runs a
// dummy verification so the two are in the same timing class.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	account, err := m.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			VerifyPassword(password, dummyHash, dummySalt)
			return "", ErrUnauthorized
		}
		return "", err
	}
	if !VerifyPassword(password, account.PasswordHash, account.PasswordSalt) {
		return "", ErrUnauthorized
	}
	return m.tokens.Issue(account.EmployeeID, account.Username, account.RoleName, m.now())
}

func validateUsername(username string) error {
	if username == "" || utf8.RuneCountInString(username) > usernameMaxLength {
		return fmt.Errorf("%w: must be 1-%d characters", ErrInvalidUsername, usernameMaxLength)
	}
	first, _ := utf8.DecodeRuneInString(username)
	if unicode.IsDigit(first) {
		return fmt.Errorf("%w: must not start with a digit", ErrInvalidUsername)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < passwordMinLength {
		return fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, passwordMinLength)
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return fmt.Errorf("%w: needs a lowercase letter, an uppercase letter, a digit and a symbol", ErrWeakPassword)
	}
	return nil
}
