package rbac

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"accessd/pkg/audit"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	m.Run()
}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 conn,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)
	return NewService(db), mock
}

func expectRoleExists(mock sqlmock.Sqlmock, roleID int64, exists bool) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`)).
		WithArgs(roleID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func expectUserExists(mock sqlmock.Sqlmock, userID int64, exists bool) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_deleted = false)`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestReplaceRolePermissions(t *testing.T) {
	svc, mock := newMockService(t)

	expectRoleExists(mock, 5, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO permission_assignments (permission_name, role_id) VALUES ($1, $2)`)).
		WithArgs("user:read", int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO permission_assignments (permission_name, role_id) VALUES ($1, $2)`)).
		WithArgs("user:create", int64(5)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	// Repeats collapse: three incoming names become two rows.
	applied, err := svc.ReplaceRolePermissions(5, []string{"user:read", "user:read", "user:create"})
	require.NoError(t, err)
	assert.Equal(t, []string{"user:read", "user:create"}, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsUnknownRole(t *testing.T) {
	svc, mock := newMockService(t)

	expectRoleExists(mock, 9, false)

	_, err := svc.ReplaceRolePermissions(9, []string{"user:read"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "role", nf.Resource)
	assert.Equal(t, "9", nf.Key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsUnknownPermission(t *testing.T) {
	svc, mock := newMockService(t)

	expectRoleExists(mock, 5, true)
	// No transaction expectations: validation must fail before any
	// mutation runs.

	_, err := svc.ReplaceRolePermissions(5, []string{"user:read", "bogus:name"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "permission", nf.Resource)
	assert.Equal(t, "bogus:name", nf.Key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsEmptyClears(t *testing.T) {
	svc, mock := newMockService(t)

	expectRoleExists(mock, 5, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	applied, err := svc.ReplaceRolePermissions(5, nil)
	require.NoError(t, err)
	assert.Empty(t, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsRollsBackOnConstraintViolation(t *testing.T) {
	svc, mock := newMockService(t)

	dbErr := errors.New(`pq: duplicate key value violates unique constraint "uq_permission_role"`)

	expectRoleExists(mock, 5, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO permission_assignments (permission_name, role_id) VALUES ($1, $2)`)).
		WithArgs("user:read", int64(5)).
		WillReturnError(dbErr)
	mock.ExpectRollback()

	_, err := svc.ReplaceRolePermissions(5, []string{"user:read"})
	assert.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceUserRoles(t *testing.T) {
	svc, mock := newMockService(t)

	expectUserExists(mock, 11, true)
	expectRoleExists(mock, 1, true)
	expectRoleExists(mock, 2, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE user_id = $1`)).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`)).
		WithArgs(int64(11), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`)).
		WithArgs(int64(11), int64(2)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	applied, err := svc.ReplaceUserRoles(11, []int64{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceUserRolesUnknownUser(t *testing.T) {
	svc, mock := newMockService(t)

	expectUserExists(mock, 99, false)

	_, err := svc.ReplaceUserRoles(99, []int64{1})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Resource)
	assert.Equal(t, "99", nf.Key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceUserRolesUnknownRoleID(t *testing.T) {
	svc, mock := newMockService(t)

	expectUserExists(mock, 11, true)
	expectRoleExists(mock, 33, false)

	_, err := svc.ReplaceUserRoles(11, []int64{33, 1})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "role", nf.Resource)
	assert.Equal(t, "33", nf.Key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceUserRolesEmptyClears(t *testing.T) {
	svc, mock := newMockService(t)

	expectUserExists(mock, 11, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE user_id = $1`)).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	applied, err := svc.ReplaceUserRoles(11, []int64{})
	require.NoError(t, err)
	assert.Empty(t, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoleCascades(t *testing.T) {
	svc, mock := newMockService(t)

	expectRoleExists(mock, 4, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE role_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM roles WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteRole(4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoleDuplicateName(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles WHERE name = $1`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(1, "admin", true))

	_, _, err := svc.CreateRole("admin", "", true, nil)
	assert.ErrorIs(t, err, ErrRoleNameTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRolePermissionsListing(t *testing.T) {
	svc, mock := newMockService(t)

	expectRoleExists(mock, 5, true)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT permission_name FROM permission_assignments WHERE role_id = $1 ORDER BY permission_name`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"permission_name"}).AddRow("user:read").AddRow("user:update"))

	names, err := svc.RolePermissions(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:read", "user:update"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}
