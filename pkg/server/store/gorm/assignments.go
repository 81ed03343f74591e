package gorm

import (
	"gorm.io/gorm"

	"accessd/pkg/server/store"
)

// Ensure AssignmentsStore implements store.AssignmentsStore
var _ store.AssignmentsStore = (*AssignmentsStore)(nil)

// AssignmentsStore implements store.AssignmentsStore using GORM
type AssignmentsStore struct {
	db *gorm.DB
}

// NewAssignmentsStore creates a new AssignmentsStore bound to the given
// session. The rbac protocols bind it to their transaction session so that
// delete-then-insert runs inside one unit-of-work scope.
func NewAssignmentsStore(db *gorm.DB) *AssignmentsStore {
	return &AssignmentsStore{db: db}
}

// RolePermissions returns the permission names assigned to a role
func (s *AssignmentsStore) RolePermissions(roleID int64) []string {
	type nameRow struct {
		PermissionName string `gorm:"column:permission_name"`
	}
	var rows []nameRow
	s.db.Raw(
		`SELECT permission_name FROM permission_assignments WHERE role_id = ? ORDER BY permission_name`,
		roleID,
	).Scan(&rows)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.PermissionName)
	}
	return names
}

// DeleteRolePermissions removes every permission row for a role
func (s *AssignmentsStore) DeleteRolePermissions(roleID int64) error {
	return s.db.Exec(`DELETE FROM permission_assignments WHERE role_id = ?`, roleID).Error
}

// InsertRolePermission adds one permission row for a role
func (s *AssignmentsStore) InsertRolePermission(roleID int64, permissionName string) error {
	return s.db.Exec(
		`INSERT INTO permission_assignments (permission_name, role_id) VALUES (?, ?)`,
		permissionName, roleID,
	).Error
}

// UserRoles returns the role ids assigned to a user
func (s *AssignmentsStore) UserRoles(userID int64) []int64 {
	type idRow struct {
		RoleID int64 `gorm:"column:role_id"`
	}
	var rows []idRow
	s.db.Raw(`SELECT role_id FROM user_roles WHERE user_id = ? ORDER BY role_id`, userID).Scan(&rows)

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RoleID)
	}
	return ids
}

// DeleteUserRoles removes every role row for a user
func (s *AssignmentsStore) DeleteUserRoles(userID int64) error {
	return s.db.Exec(`DELETE FROM user_roles WHERE user_id = ?`, userID).Error
}

// InsertUserRole adds one role row for a user
func (s *AssignmentsStore) InsertUserRole(userID, roleID int64) error {
	return s.db.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, roleID).Error
}
