package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"accessd/pkg/db"
	"accessd/pkg/rbac"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create [username] [email]",
	Short: "Create a user",
	Long: `Create a user.

The password is read from the --password flag. When the flag is omitted a
random password is generated and printed to STDOUT.

Example:
  accessctl user create alice alice@example.com
  accessctl user create alice alice@example.com --password secret-password`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		email := args[1]
		password, _ := cmd.Flags().GetString("password")

		generated := false
		if password == "" {
			var err error
			password, err = generatePassword()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to generate password: %v\n", err)
				os.Exit(1)
			}
			generated = true
		}

		if err := createUser(username, email, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s'\n", username)
		if generated {
			fmt.Printf("Password for %s: %s\n", username, password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("password", "w", "", "Password for the new user")
}

func createUser(username, email, password string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	_, err = rbac.NewService(database).CreateUser(username, email, password)
	return err
}

func generatePassword() (string, error) {
	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}
