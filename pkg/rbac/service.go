package rbac

import (
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"accessd/pkg/audit"
	"accessd/pkg/config"
	"accessd/pkg/permissions"
	"accessd/pkg/server/store"
	gormstore "accessd/pkg/server/store/gorm"
	"accessd/pkg/uow"
)

// Service implements the assignment protocols and the role lifecycle
// operations that touch assignment rows. Every mutation runs inside one
// unit-of-work scope on the service's session; validation always precedes
// the scope.
type Service struct {
	db       *gorm.DB
	clientIP string
}

// NewService creates a Service on the given session
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// WithClientIP returns a copy of the service that stamps audit events
// with the given caller address.
func (s *Service) WithClientIP(ip string) *Service {
	clone := *s
	clone.clientIP = ip
	return &clone
}

// FlattenPermissions returns every known permission name, preorder.
func (s *Service) FlattenPermissions() []string {
	return permissions.Flatten()
}

// PermissionTree returns the permission catalog for display.
func (s *Service) PermissionTree() permissions.Node {
	return permissions.Tree()
}

// ListRoles returns every role ordered by id.
func (s *Service) ListRoles() []store.Role {
	return gormstore.NewRolesStore(s.db).ListRoles()
}

// FetchRole returns a role by id, or nil when it does not exist.
func (s *Service) FetchRole(roleID int64) *store.Role {
	return gormstore.NewRolesStore(s.db).FetchRole(roleID)
}

// RolePermissions returns the permission names currently assigned to a
// role. Unknown roles fail with NotFoundError.
func (s *Service) RolePermissions(roleID int64) ([]string, error) {
	if !gormstore.NewRolesStore(s.db).RoleExists(roleID) {
		return nil, &NotFoundError{Resource: "role", Key: formatID(roleID)}
	}
	return gormstore.NewAssignmentsStore(s.db).RolePermissions(roleID), nil
}

// UserRoles returns the role ids currently assigned to a user. Unknown
// users fail with NotFoundError.
func (s *Service) UserRoles(userID int64) ([]int64, error) {
	if !gormstore.NewUsersStore(s.db).UserExists(userID) {
		return nil, &NotFoundError{Resource: "user", Key: formatID(userID)}
	}
	return gormstore.NewAssignmentsStore(s.db).UserRoles(userID), nil
}

// ReplaceRolePermissions replaces the full permission set of a role.
//
// The role and every incoming name are validated before any mutation;
// an unknown name fails the whole call with a NotFoundError naming it.
// Names are deduplicated, then every existing row for the role is deleted
// and one row inserted per remaining name, all inside one transactional
// scope. A nil or empty input is valid and clears the set. The applied
// (deduplicated) set is returned in first-occurrence order.
func (s *Service) ReplaceRolePermissions(roleID int64, permissionNames []string) ([]string, error) {
	if !gormstore.NewRolesStore(s.db).RoleExists(roleID) {
		return nil, &NotFoundError{Resource: "role", Key: formatID(roleID)}
	}
	for _, name := range permissionNames {
		if !permissions.Exists(name) {
			return nil, &NotFoundError{Resource: "permission", Key: name}
		}
	}

	applied := dedupeStrings(permissionNames)

	err := uow.Run(s.db, func(tx *gorm.DB) error {
		assignments := gormstore.NewAssignmentsStore(tx)
		if err := assignments.DeleteRolePermissions(roleID); err != nil {
			return err
		}
		for _, name := range applied {
			if err := assignments.InsertRolePermission(roleID, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		audit.Log(audit.ReplacePermissionsEvent{RoleID: roleID, ClientIP: s.clientIP, ErrorMessage: err.Error()})
		return nil, err
	}

	audit.Log(audit.ReplacePermissionsEvent{RoleID: roleID, PermissionNames: applied, ClientIP: s.clientIP, Success: true})
	return applied, nil
}

// ReplaceUserRoles replaces the full role set of a user.
//
// Same shape as ReplaceRolePermissions: user existence first, then every
// incoming role id (a NotFoundError names the offending id), dedupe,
// delete-all plus insert-per-id inside one scope, empty input clears.
func (s *Service) ReplaceUserRoles(userID int64, roleIDs []int64) ([]int64, error) {
	if !gormstore.NewUsersStore(s.db).UserExists(userID) {
		return nil, &NotFoundError{Resource: "user", Key: formatID(userID)}
	}
	roles := gormstore.NewRolesStore(s.db)
	for _, roleID := range roleIDs {
		if !roles.RoleExists(roleID) {
			return nil, &NotFoundError{Resource: "role", Key: formatID(roleID)}
		}
	}

	applied := dedupeInt64s(roleIDs)

	err := uow.Run(s.db, func(tx *gorm.DB) error {
		assignments := gormstore.NewAssignmentsStore(tx)
		if err := assignments.DeleteUserRoles(userID); err != nil {
			return err
		}
		for _, roleID := range applied {
			if err := assignments.InsertUserRole(userID, roleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		audit.Log(audit.ReplaceRolesEvent{UserID: userID, ClientIP: s.clientIP, ErrorMessage: err.Error()})
		return nil, err
	}

	audit.Log(audit.ReplaceRolesEvent{UserID: userID, RoleIDs: applied, ClientIP: s.clientIP, Success: true})
	return applied, nil
}

// CreateRole creates a role and, when permissionNames is non-empty,
// assigns its initial permission set in the same transactional scope.
func (s *Service) CreateRole(name, description string, isActive bool, permissionNames []string) (*store.Role, []string, error) {
	if gormstore.NewRolesStore(s.db).FetchRoleByName(name) != nil {
		return nil, nil, ErrRoleNameTaken
	}
	for _, permissionName := range permissionNames {
		if !permissions.Exists(permissionName) {
			return nil, nil, &NotFoundError{Resource: "permission", Key: permissionName}
		}
	}

	applied := dedupeStrings(permissionNames)

	var created *store.Role
	err := uow.Run(s.db, func(tx *gorm.DB) error {
		role, err := gormstore.NewRolesStore(tx).CreateRole(name, description, isActive)
		if err != nil {
			return err
		}
		created = role

		assignments := gormstore.NewAssignmentsStore(tx)
		for _, permissionName := range applied {
			if err := assignments.InsertRolePermission(role.ID, permissionName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, applied, nil
}

// UpdateRole applies the non-nil field updates and, when permissionNames
// is non-nil, replaces the role's permission set in the same scope. A nil
// permissionNames leaves the set untouched; a pointer to an empty slice
// clears it.
func (s *Service) UpdateRole(roleID int64, name, description *string, isActive *bool, permissionNames *[]string) ([]string, error) {
	rolesStore := gormstore.NewRolesStore(s.db)
	if !rolesStore.RoleExists(roleID) {
		return nil, &NotFoundError{Resource: "role", Key: formatID(roleID)}
	}
	if name != nil {
		if existing := rolesStore.FetchRoleByName(*name); existing != nil && existing.ID != roleID {
			return nil, ErrRoleNameTaken
		}
	}

	var applied []string
	if permissionNames != nil {
		for _, permissionName := range *permissionNames {
			if !permissions.Exists(permissionName) {
				return nil, &NotFoundError{Resource: "permission", Key: permissionName}
			}
		}
		applied = dedupeStrings(*permissionNames)
	}

	err := uow.Run(s.db, func(tx *gorm.DB) error {
		if err := gormstore.NewRolesStore(tx).UpdateRole(roleID, name, description, isActive); err != nil {
			return err
		}
		if permissionNames == nil {
			return nil
		}
		assignments := gormstore.NewAssignmentsStore(tx)
		if err := assignments.DeleteRolePermissions(roleID); err != nil {
			return err
		}
		for _, permissionName := range applied {
			if err := assignments.InsertRolePermission(roleID, permissionName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if permissionNames == nil {
		return gormstore.NewAssignmentsStore(s.db).RolePermissions(roleID), nil
	}
	return applied, nil
}

// DeleteRole removes a role together with its permission rows and every
// user-role row pointing at it, atomically.
func (s *Service) DeleteRole(roleID int64) error {
	if !gormstore.NewRolesStore(s.db).RoleExists(roleID) {
		return &NotFoundError{Resource: "role", Key: formatID(roleID)}
	}

	err := uow.Run(s.db, func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM user_roles WHERE role_id = ?`, roleID).Error; err != nil {
			return err
		}
		if err := gormstore.NewAssignmentsStore(tx).DeleteRolePermissions(roleID); err != nil {
			return err
		}
		return gormstore.NewRolesStore(tx).DeleteRole(roleID)
	})
	if err != nil {
		audit.Log(audit.RoleDeleteEvent{RoleID: roleID, ClientIP: s.clientIP, ErrorMessage: err.Error()})
		return err
	}

	audit.Log(audit.RoleDeleteEvent{RoleID: roleID, ClientIP: s.clientIP, Success: true})
	return nil
}

// ListUsers returns every live user ordered by id.
func (s *Service) ListUsers() []store.User {
	return gormstore.NewUsersStore(s.db).ListUsers()
}

// FetchUser returns a live user by id, or nil when it does not exist.
func (s *Service) FetchUser(userID int64) *store.User {
	return gormstore.NewUsersStore(s.db).FetchUser(userID)
}

// CreateUser creates a user with a bcrypt-hashed password. The work
// factor comes from configuration.
func (s *Service) CreateUser(username, email, password string) (*store.User, error) {
	users := gormstore.NewUsersStore(s.db)
	if users.FetchUserByUsername(username) != nil {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.Get().BcryptCost)
	if err != nil {
		return nil, err
	}

	var created *store.User
	err = uow.Run(s.db, func(tx *gorm.DB) error {
		user, err := gormstore.NewUsersStore(tx).CreateUser(username, email, string(hashed))
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteUser soft-deletes a user and removes its role assignments in the
// same scope. The user row stays behind for audit trails.
func (s *Service) DeleteUser(userID int64) error {
	if !gormstore.NewUsersStore(s.db).UserExists(userID) {
		return &NotFoundError{Resource: "user", Key: formatID(userID)}
	}

	return uow.Run(s.db, func(tx *gorm.DB) error {
		if err := gormstore.NewAssignmentsStore(tx).DeleteUserRoles(userID); err != nil {
			return err
		}
		return gormstore.NewUsersStore(tx).SoftDeleteUser(userID)
	})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// dedupeStrings keeps the first occurrence of each value.
func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// dedupeInt64s keeps the first occurrence of each value.
func dedupeInt64s(in []int64) []int64 {
	out := make([]int64, 0, len(in))
	seen := make(map[int64]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
