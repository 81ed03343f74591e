// Package config provides configuration management for accessd.
//
// This package handles loading and validating accessd server configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration files (optional)
//
// # Key Configuration Options
//
//   - ACCESSD_CONFIG_PATH: Directory holding accessd.yml
//   - ACCESSD_TRUSTED_PROXIES: Trusted proxy CIDR ranges
//   - ACCESSD_API_LIST_LIMIT_MAX: Listing result cap
//   - ACCESSD_AUDIT_ENABLED: Audit logging toggle
//   - ACCESSD_BCRYPT_COST: Password hashing work factor
//   - ACCESSD_LOG_LEVEL: Logging verbosity
//   - DATABASE_URL: Database connection
//   - PORT: Server listen port
package config
