package model

import "time"

// User represents an account that can hold role assignments
type User struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username       string     `gorm:"column:username;uniqueIndex;size:50"`
	Email          string     `gorm:"column:email;uniqueIndex;size:100"`
	HashedPassword string     `gorm:"column:hashed_password"`
	IsSuperuser    bool       `gorm:"column:is_superuser;not null;default:false"`
	TierID         *int64     `gorm:"column:tier_id"`
	IsDeleted      bool       `gorm:"column:is_deleted;not null;default:false"`
	DeletedAt      *time.Time `gorm:"column:deleted_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      *time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
