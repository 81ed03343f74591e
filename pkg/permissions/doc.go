// Package permissions holds the static permission catalog for accessd.
//
// The catalog is a tree built at process start and immutable afterwards.
// Permission names are globally unique strings of the form "domain:action"
// (for example "user:read"). The package exposes three pure read
// operations:
//
//   - Flatten: preorder list of every permission name
//   - Exists: membership check
//   - Tree: the catalog structure, for presentation
//
// Assignment validation in package rbac runs against Exists; the database
// stores permission names as plain strings, never references into this
// tree.
package permissions
