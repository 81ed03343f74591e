package store

import "time"

// User represents a user row as the API layer sees it. The hashed password
// never leaves the store.
type User struct {
	ID          int64
	Username    string
	Email       string
	IsSuperuser bool
	TierID      *int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// UsersStore abstracts user storage operations. Soft-deleted users are
// invisible through every method here.
type UsersStore interface {
	// UserExists checks if a live (non-deleted) user exists
	UserExists(userID int64) bool

	// FetchUser retrieves a user by id
	FetchUser(userID int64) *User

	// FetchUserByUsername retrieves a user by username
	FetchUserByUsername(username string) *User

	// ListUsers returns all live users ordered by id
	ListUsers() []User

	// CreateUser inserts a new user with an already-hashed password
	CreateUser(username, email, hashedPassword string) (*User, error)

	// SoftDeleteUser marks the user deleted without removing the row
	SoftDeleteUser(userID int64) error
}
