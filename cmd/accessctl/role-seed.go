package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"accessd/pkg/db"
	"accessd/pkg/permissions"
	"accessd/pkg/rbac"
)

// roleSeedCmd represents the role seed command
var roleSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default roles",
	Long: `Create the default roles.

Seeds an 'admin' role holding the root permission and a 'viewer' role
holding the read permissions. Roles that already exist are left alone.

Example:
  accessctl role seed`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := seedRoles(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed roles: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	roleCmd.AddCommand(roleSeedCmd)
}

var defaultRoles = []struct {
	name        string
	description string
	permissions []string
}{
	{
		name:        "admin",
		description: "Full administrative access",
		permissions: []string{permissions.Root},
	},
	{
		name:        "viewer",
		description: "Read-only access",
		permissions: []string{permissions.UserRead, permissions.RoleRead},
	},
}

func seedRoles() error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	service := rbac.NewService(database)

	for _, seed := range defaultRoles {
		_, _, err := service.CreateRole(seed.name, seed.description, true, seed.permissions)
		if err == rbac.ErrRoleNameTaken {
			fmt.Printf("Role '%s' already exists, skipping\n", seed.name)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create role '%s': %w", seed.name, err)
		}
		fmt.Printf("Created role '%s'\n", seed.name)
	}
	return nil
}
