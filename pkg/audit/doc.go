// Package audit provides audit logging for accessd operations.
//
// This package implements structured audit logging for security-relevant
// operations: replacing a role's permission set, replacing a user's role
// set, and deleting roles.
//
// # Event Types
//
//   - ReplacePermissionsEvent: a role's permission set was replaced
//   - ReplaceRolesEvent: a user's role set was replaced
//   - RoleDeleteEvent: a role and its assignment rows were removed
//
// # Usage
//
//	audit.Log(audit.ReplacePermissionsEvent{
//	    RoleID:          roleID,
//	    PermissionNames: applied,
//	    Success:         true,
//	})
//
// Events are written to stdout in RFC5424 syslog format and, when
// AUDIT_DATABASE_URL is set, persisted to the audit messages table.
// ACCESSD_AUDIT_ENABLED=false disables the subsystem.
package audit
