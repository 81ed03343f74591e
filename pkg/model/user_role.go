package model

import "time"

// UserRoleAssignment binds a role to a user. Rows are churned only by the
// user-role replace protocol, never patched in place.
type UserRoleAssignment struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;index"`
	RoleID    int64     `gorm:"column:role_id;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserRoleAssignment) TableName() string {
	return "user_roles"
}
