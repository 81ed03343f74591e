// Package model defines the database models for accessd.
//
// This package contains GORM models that map to the accessd PostgreSQL
// schema.
//
// # Core Models
//
//   - User: accounts, soft-deleted rather than removed
//   - Role: named permission bundles
//   - PermissionAssignment: role(or user)-to-permission-name edges
//   - UserRoleAssignment: user-to-role edges
//
// # Database Schema
//
// The schema keeps two join tables, each guarded by a pair uniqueness
// constraint:
//
//   - permission_assignments: unique (permission_name, role_id) and
//     (permission_name, user_id); a row references a role XOR a user
//   - user_roles: unique (user_id, role_id)
//
// Permission names are plain strings validated against the registry in
// package permissions; they are not foreign keys.
package model
