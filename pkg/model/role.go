package model

import "time"

// Role represents a named, reusable bundle of permissions
type Role struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;uniqueIndex;size:50"`
	Description *string    `gorm:"column:description"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (Role) TableName() string {
	return "roles"
}
