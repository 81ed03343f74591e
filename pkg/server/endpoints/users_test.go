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

func TestCreateUserEndpoint(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE username = $1 AND is_deleted = false`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	rr := doRequest(s, "POST", "/users", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	})

	require.Equal(t, http.StatusCreated, rr.Code)

	var user UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotContains(t, rr.Body.String(), "password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserEndpointDuplicateUsername(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE username = $1 AND is_deleted = false`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(7, "alice", "alice@example.com"))

	rr := doRequest(s, "POST", "/users", map[string]interface{}{
		"username": "alice",
		"email":    "other@example.com",
		"password": "s3cret-password",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserEndpointValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(s, "POST", "/users", map[string]interface{}{
		"username": "alice",
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "validation failed")
}

func TestShowUserEndpointNotFound(t *testing.T) {
	s, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE id = $1 AND is_deleted = false`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}))

	rr := doRequest(s, "GET", "/users/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserEndpoint(t *testing.T) {
	s, mock := newTestServer(t)

	expectUserExists(mock, 11, true)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_roles WHERE user_id = $1`)).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET is_deleted = true, deleted_at = $1 WHERE id = $2 AND is_deleted = false`)).
		WithArgs(sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr := doRequest(s, "DELETE", "/users/11", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserEndpointNotFound(t *testing.T) {
	s, mock := newTestServer(t)

	expectUserExists(mock, 11, false)

	rr := doRequest(s, "DELETE", "/users/11", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
