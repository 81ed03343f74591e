package endpoints

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRolePermissionsEndpoint(t *testing.T) {
	s, mock := newTestServer(t)

	expectRoleExists(mock, 5, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO permission_assignments (permission_name, role_id) VALUES ($1, $2)`)).
		WithArgs("user:read", int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO permission_assignments (permission_name, role_id) VALUES ($1, $2)`)).
		WithArgs("user:update", int64(5)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	rr := doRequest(s, "PUT", "/roles/5/permissions", map[string]interface{}{
		"permissions": []string{"user:read", "user:read", "user:update"},
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		RoleID      int64    `json:"role_id"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, int64(5), response.RoleID)
	assert.Equal(t, []string{"user:read", "user:update"}, response.Permissions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsEndpointUnknownRole(t *testing.T) {
	s, mock := newTestServer(t)

	expectRoleExists(mock, 9, false)

	rr := doRequest(s, "PUT", "/roles/9/permissions", map[string]interface{}{
		"permissions": []string{"user:read"},
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsEndpointUnknownPermission(t *testing.T) {
	s, mock := newTestServer(t)

	expectRoleExists(mock, 5, true)

	rr := doRequest(s, "PUT", "/roles/5/permissions", map[string]interface{}{
		"permissions": []string{"no:such"},
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no:such")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsEndpointEmptyClears(t *testing.T) {
	s, mock := newTestServer(t)

	expectRoleExists(mock, 5, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	rr := doRequest(s, "PUT", "/roles/5/permissions", map[string]interface{}{
		"permissions": []string{},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRolePermissionsEndpointBadBody(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(s, "PUT", "/roles/5/permissions", "not an object")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReplaceRolePermissionsEndpointBadID(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(s, "PUT", "/roles/abc/permissions", map[string]interface{}{
		"permissions": []string{"user:read"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestShowRoleEndpoint(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(5, "auditor", true))
	expectRoleExists(mock, 5, true)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT permission_name FROM permission_assignments WHERE role_id = $1 ORDER BY permission_name`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"permission_name"}).AddRow("user:read"))

	rr := doRequest(s, "GET", "/roles/5", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var role RoleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &role))
	assert.Equal(t, "auditor", role.Name)
	assert.Equal(t, []string{"user:read"}, role.Permissions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShowRoleEndpointNotFound(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}))

	rr := doRequest(s, "GET", "/roles/7", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoleEndpointValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(s, "POST", "/roles", map[string]interface{}{
		"description": "no name given",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "validation failed")
}

func TestCreateRoleEndpointDuplicateName(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles WHERE name = $1`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(1, "admin", true))

	rr := doRequest(s, "POST", "/roles", map[string]interface{}{"name": "admin"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoleEndpoint(t *testing.T) {
	s, mock := newTestServer(t)

	expectRoleExists(mock, 4, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE role_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM permission_assignments WHERE role_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM roles WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr := doRequest(s, "DELETE", "/roles/4", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRolesEndpoint(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM roles ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).
			AddRow(1, "admin", true).
			AddRow(2, "auditor", false))

	rr := doRequest(s, "GET", "/roles", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var roles []RoleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &roles))
	require.Len(t, roles, 2)
	assert.Equal(t, "admin", roles[0].Name)
	assert.False(t, roles[1].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}
