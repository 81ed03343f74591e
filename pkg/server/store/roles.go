package store

import "time"

// Role represents a role row as the API layer sees it
type Role struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// RolesStore abstracts role storage operations
type RolesStore interface {
	// RoleExists checks if a role exists
	RoleExists(roleID int64) bool

	// FetchRole retrieves a role by id
	FetchRole(roleID int64) *Role

	// FetchRoleByName retrieves a role by its unique name
	FetchRoleByName(name string) *Role

	// ListRoles returns all roles ordered by id
	ListRoles() []Role

	// CreateRole inserts a new role and returns it with its id assigned
	CreateRole(name, description string, isActive bool) (*Role, error)

	// UpdateRole applies the non-nil fields to an existing role
	UpdateRole(roleID int64, name, description *string, isActive *bool) error

	// DeleteRole removes the role row. Assignment rows are the assignment
	// protocols' concern and are cascaded by the rbac service, not here.
	DeleteRole(roleID int64) error
}
