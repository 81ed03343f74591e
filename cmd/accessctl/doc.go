// Package main provides accessctl, the CLI for the accessd authorization server.
//
// accessd manages users, roles and a fixed permission catalog, exposing a
// REST API for replace-style assignment of permissions to roles and roles
// to users.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: Storage interfaces and GORM implementations
//   - pkg/rbac: Assignment protocols and role/user lifecycle
//   - pkg/uow: Transactional unit-of-work scopes
//   - pkg/permissions: The permission catalog
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
//	# Run database migrations
//	accessctl db migrate
//
//	# Create a user
//	accessctl user create alice alice@example.com
//
//	# Seed the default roles
//	accessctl role seed
//
//	# Start the server
//	accessctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ACCESSD_CONFIG_PATH: Directory holding accessd.yml
//   - ACCESSD_LOG_LEVEL: Log level (debug for SQL logging)
//   - ACCESSD_AUDIT_ENABLED: Audit logging toggle
//   - PORT: Server port (default: 8000)
package main
