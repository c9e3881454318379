package pg

import (
	"context"
	"database/sql"
	"errors"

	"devicemanager.org/internal/auth"
	"devicemanager.org/internal/ids"
)

var (
	_ auth.AccountStore      = (*AccountStore)(nil)
	_ auth.RoleStore         = (*RoleStore)(nil)
	_ auth.EmployeeDirectory = (*EmployeeDirectory)(nil)
)

// AccountStore persists accounts. The unique indexes on username and
// employee_id are the final arbiter under concurrent inserts; violations
// surface as the matching auth sentinel.
type AccountStore struct {
	db *sql.DB
}

const accountColumns = `a.id, a.username, a.password_hash, a.password_salt, a.employee_id, a.role_id, r.name`

func scanAccount(row interface{ Scan(...any) error }) (*auth.Account, error) {
	var a auth.Account
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.PasswordSalt, &a.EmployeeID, &a.RoleID, &a.RoleName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+accountColumns+`
		from account a
		join role r on r.id = a.role_id
		where a.username = $1
	`, username)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, storeErr("find account by username", err)
	}
	return a, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*auth.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+accountColumns+`
		from account a
		join role r on r.id = a.role_id
		where a.id = $1
	`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, storeErr("find account by id", err)
	}
	return a, nil
}

func (s *AccountStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`select exists(select 1 from account where username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, storeErr("check username", err)
	}
	return exists, nil
}

func (s *AccountStore) Insert(ctx context.Context, a *auth.Account) error {
	_, err := s.db.ExecContext(ctx, `
		insert into account (id, username, password_hash, password_salt, employee_id, role_id)
		values ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.Username, a.PasswordHash, a.PasswordSalt, a.EmployeeID, a.RoleID)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			if pgErr.ConstraintName == "account_employee_id_key" {
				return auth.ErrEmployeeHasAccount
			}
			return auth.ErrUsernameTaken
		}
		return storeErr("insert account", err)
	}
	return nil
}

func (s *AccountStore) Update(ctx context.Context, a *auth.Account) error {
	res, err := s.db.ExecContext(ctx, `
		update account
		set username = $2, password_hash = $3, password_salt = $4, role_id = $5
		where id = $1
	`, a.ID, a.Username, a.PasswordHash, a.PasswordSalt, a.RoleID)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return auth.ErrUsernameTaken
		}
		return storeErr("update account", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update account", err)
	}
	if affected == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from account where id = $1`, id)
	if err != nil {
		return storeErr("delete account", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete account", err)
	}
	if affected == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

func (s *AccountStore) List(ctx context.Context) ([]*auth.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+accountColumns+`
		from account a
		join role r on r.id = a.role_id
		order by a.username
	`)
	if err != nil {
		return nil, storeErr("list accounts", err)
	}
	defer rows.Close()

	var accounts []*auth.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, storeErr("list accounts", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list accounts", err)
	}
	return accounts, nil
}

// RoleStore persists roles.
type RoleStore struct {
	db *sql.DB
}

func (s *RoleStore) FindByName(ctx context.Context, name string) (*auth.Role, error) {
	var role auth.Role
	err := s.db.QueryRowContext(ctx,
		`select id, name from role where name = $1`, name,
	).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrRoleNotFound
	}
	if err != nil {
		return nil, storeErr("find role", err)
	}
	return &role, nil
}

// EnsureSeeded creates each named role if absent. The on-conflict clause
// makes a racing second process a no-op rather than a crash.
func (s *RoleStore) EnsureSeeded(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := s.db.ExecContext(ctx,
			`insert into role (id, name) values ($1, $2) on conflict (name) do nothing`,
			ids.New(), name,
		)
		if err != nil {
			return storeErr("seed role", err)
		}
	}
	return nil
}

// EmployeeDirectory answers the reference checks the account subsystem
// needs before provisioning.
type EmployeeDirectory struct {
	db *sql.DB
}

func (s *EmployeeDirectory) Exists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`select exists(select 1 from employee where id = $1)`, employeeID,
	).Scan(&exists)
	if err != nil {
		return false, storeErr("check employee", err)
	}
	return exists, nil
}

func (s *EmployeeDirectory) HasAccount(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`select exists(select 1 from account where employee_id = $1)`, employeeID,
	).Scan(&exists)
	if err != nil {
		return false, storeErr("check employee account", err)
	}
	return exists, nil
}
