package store

// AssignmentsStore abstracts the two join tables owned by the assignment
// protocols: permission_assignments (role side only) and user_roles.
// Mutating methods are meant to run inside a unit-of-work scope; callers
// bind an implementation to the transaction session first.
type AssignmentsStore interface {
	// RolePermissions returns the permission names assigned to a role
	RolePermissions(roleID int64) []string

	// DeleteRolePermissions removes every permission row for a role
	DeleteRolePermissions(roleID int64) error

	// InsertRolePermission adds one permission row for a role
	InsertRolePermission(roleID int64, permissionName string) error

	// UserRoles returns the role ids assigned to a user
	UserRoles(userID int64) []int64

	// DeleteUserRoles removes every role row for a user
	DeleteUserRoles(userID int64) error

	// InsertUserRole adds one role row for a user
	InsertUserRole(userID, roleID int64) error
}
