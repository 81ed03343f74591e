// Package rbac implements the assignment protocols that bind permissions
// to roles and roles to users.
//
// Both protocols are full-replace: the caller sends the complete desired
// set, never a patch. Validation (role/user existence, permission registry
// membership, role id existence) happens before any transactional scope
// opens, so a NotFoundError always means nothing changed. The mutations
// themselves — delete every existing assignment row, insert one row per
// deduplicated incoming value — run inside a single uow.Run scope and
// commit or roll back together.
//
// Concurrent replaces for the same role or user are not coordinated here;
// the database's pair uniqueness constraints are the only defense, and a
// constraint violation surfaces as the persistence error after rollback.
package rbac
