package gorm

import (
	"time"

	"gorm.io/gorm"

	"accessd/pkg/model"
	"accessd/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore bound to the given session. Bind
// it to a transaction session to run inside a unit-of-work scope.
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

// RoleExists checks if a role exists
func (s *RolesStore) RoleExists(roleID int64) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE id = ?)`, roleID).Scan(&exists)
	return exists
}

// FetchRole retrieves a role by id
func (s *RolesStore) FetchRole(roleID int64) *store.Role {
	return s.fetchRole(`SELECT * FROM roles WHERE id = ?`, roleID)
}

// FetchRoleByName retrieves a role by its unique name
func (s *RolesStore) FetchRoleByName(name string) *store.Role {
	return s.fetchRole(`SELECT * FROM roles WHERE name = ?`, name)
}

// ListRoles returns all roles ordered by id
func (s *RolesStore) ListRoles() []store.Role {
	var rows []model.Role
	s.db.Raw(`SELECT * FROM roles ORDER BY id`).Scan(&rows)

	roles := make([]store.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, toStoreRole(row))
	}
	return roles
}

// CreateRole inserts a new role and returns it with its id assigned
func (s *RolesStore) CreateRole(name, description string, isActive bool) (*store.Role, error) {
	row := model.Role{
		Name:     name,
		IsActive: isActive,
	}
	if description != "" {
		row.Description = &description
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	role := toStoreRole(row)
	return &role, nil
}

// UpdateRole applies the non-nil fields to an existing role
func (s *RolesStore) UpdateRole(roleID int64, name, description *string, isActive *bool) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	return s.db.Table("roles").Where("id = ?", roleID).Updates(updates).Error
}

// DeleteRole removes the role row
func (s *RolesStore) DeleteRole(roleID int64) error {
	return s.db.Exec(`DELETE FROM roles WHERE id = ?`, roleID).Error
}

func (s *RolesStore) fetchRole(query string, args ...interface{}) *store.Role {
	var rows []model.Role
	s.db.Raw(query, args...).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}
	role := toStoreRole(rows[0])
	return &role
}

func toStoreRole(row model.Role) store.Role {
	role := store.Role{
		ID:        row.ID,
		Name:      row.Name,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Description != nil {
		role.Description = *row.Description
	}
	return role
}
