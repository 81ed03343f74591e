package model

import "time"

// PermissionAssignment binds a permission name to a role or, as a schema
// extension point, directly to a user. Exactly one of RoleID and UserID is
// set per row; the assignment protocols only ever write RoleID.
type PermissionAssignment struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PermissionName string    `gorm:"column:permission_name;size:100;index"`
	RoleID         *int64    `gorm:"column:role_id;index"`
	UserID         *int64    `gorm:"column:user_id;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PermissionAssignment) TableName() string {
	return "permission_assignments"
}
