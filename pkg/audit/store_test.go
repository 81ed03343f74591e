package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := ReplacePermissionsEvent{
		RoleID:          42,
		PermissionNames: []string{"user:read"},
		ClientIP:        "10.0.0.1",
		Success:         true,
	}

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(
			FacilityAuthPriv,     // facility
			int(SeverityNotice),  // severity
			sqlmock.AnyArg(),     // timestamp
			sqlmock.AnyArg(),     // hostname
			"accessd",            // appname
			sqlmock.AnyArg(),     // procid
			"replace-permissions", // msgid
			sqlmock.AnyArg(),     // sdata (JSON)
			sqlmock.AnyArg(),     // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(event)
	if err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Save(ReplaceRolesEvent{UserID: 1}); err != nil {
		t.Errorf("Save() on nil db should be a no-op, got %v", err)
	}
}
