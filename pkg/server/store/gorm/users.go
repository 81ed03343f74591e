package gorm

import (
	"time"

	"gorm.io/gorm"

	"accessd/pkg/model"
	"accessd/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// UserExists checks if a live (non-deleted) user exists
func (s *UsersStore) UserExists(userID int64) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE id = ? AND is_deleted = false)`, userID).Scan(&exists)
	return exists
}

// FetchUser retrieves a user by id
func (s *UsersStore) FetchUser(userID int64) *store.User {
	return s.fetchUser(`SELECT * FROM users WHERE id = ? AND is_deleted = false`, userID)
}

// FetchUserByUsername retrieves a user by username
func (s *UsersStore) FetchUserByUsername(username string) *store.User {
	return s.fetchUser(`SELECT * FROM users WHERE username = ? AND is_deleted = false`, username)
}

// ListUsers returns all live users ordered by id
func (s *UsersStore) ListUsers() []store.User {
	var rows []model.User
	s.db.Raw(`SELECT * FROM users WHERE is_deleted = false ORDER BY id`).Scan(&rows)

	users := make([]store.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toStoreUser(row))
	}
	return users
}

// CreateUser inserts a new user with an already-hashed password
func (s *UsersStore) CreateUser(username, email, hashedPassword string) (*store.User, error) {
	row := model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	user := toStoreUser(row)
	return &user, nil
}

// SoftDeleteUser marks the user deleted without removing the row
func (s *UsersStore) SoftDeleteUser(userID int64) error {
	return s.db.Exec(
		`UPDATE users SET is_deleted = true, deleted_at = ? WHERE id = ? AND is_deleted = false`,
		time.Now().UTC(), userID,
	).Error
}

func (s *UsersStore) fetchUser(query string, args ...interface{}) *store.User {
	var rows []model.User
	s.db.Raw(query, args...).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}
	user := toStoreUser(rows[0])
	return &user
}

func toStoreUser(row model.User) store.User {
	return store.User{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		IsSuperuser: row.IsSuperuser,
		TierID:      row.TierID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
