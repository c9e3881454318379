package pg

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicemanager.org/internal/auth"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "password_salt", "employee_id", "role_id", "name"})
}

func TestFindByUsername(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select .* from account a").
		WithArgs("alice").
		WillReturnRows(accountRows().AddRow("acc-1", "alice", []byte{1}, []byte{2}, "emp-1", "role-1", "Admin"))

	account, err := store.Accounts().FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "Admin", account.RoleName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsernameMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select .* from account a").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Accounts().FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMapsUniqueViolations(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username taken", "account_username_key", auth.ErrUsernameTaken},
		{"employee already bound", "account_employee_id_key", auth.ErrEmployeeHasAccount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, mock := newMockStore(t)

			mock.ExpectExec("insert into account").
				WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: tc.constraint})

			err := store.Accounts().Insert(context.Background(), &auth.Account{
				ID: "acc-1", Username: "alice",
				PasswordHash: []byte{1}, PasswordSalt: []byte{2},
				EmployeeID: "emp-1", RoleID: "role-1",
			})
			assert.ErrorIs(t, err, tc.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInsertWrapsInfrastructureFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into account").
		WillReturnError(&pgconn.PgError{Code: "57P01"})

	err := store.Accounts().Insert(context.Background(), &auth.Account{ID: "acc-1"})
	assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingAccount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("delete from account").
		WithArgs("acc-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Accounts().Delete(context.Background(), "acc-9")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSeededInsertsEachRole(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into role .*on conflict \\(name\\) do nothing").
		WithArgs(sqlmock.AnyArg(), "Admin").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("insert into role .*on conflict \\(name\\) do nothing").
		WithArgs(sqlmock.AnyArg(), "User").
		WillReturnResult(sqlmock.NewResult(0, 0)) // already present: no-op

	err := store.Roles().EnsureSeeded(context.Background(), auth.DefaultRoles)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRoleByName(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select id, name from role").
		WithArgs("User").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("role-2", "User"))

	role, err := store.Roles().FindByName(context.Background(), "User")
	require.NoError(t, err)
	assert.Equal(t, "role-2", role.ID)

	mock.ExpectQuery("select id, name from role").
		WithArgs("Owner").
		WillReturnError(sql.ErrNoRows)

	_, err = store.Roles().FindByName(context.Background(), "Owner")
	assert.ErrorIs(t, err, auth.ErrRoleNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeDirectory(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select exists\\(select 1 from employee").
		WithArgs("emp-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.Employees().Exists(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("select exists\\(select 1 from account").
		WithArgs("emp-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	has, err := store.Employees().HasAccount(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.False(t, has)
	require.NoError(t, mock.ExpectationsWereMet())
}
