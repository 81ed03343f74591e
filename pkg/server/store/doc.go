// Package store provides storage abstractions for the accessd server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints and the rbac protocols to be decoupled from the specific
// database implementation. This enables easier testing with mocks and
// potential support for different storage backends.
//
// # Available Stores
//
//   - RolesStore: role CRUD and existence checks
//   - UsersStore: user CRUD and existence checks
//   - AssignmentsStore: the role-permission and user-role join tables
//
// # Usage
//
//	roles := gorm.NewRolesStore(db)
//	if !roles.RoleExists(42) {
//	    // Handle not found
//	}
package store
