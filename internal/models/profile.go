package models

import (
	"time"
)

// Profile is the 1:1 extension of a user account. The primary key is the
// owning user's id, so writes are upserts keyed by user_id.
type Profile struct {
	UserID    uint      `json:"userId" gorm:"column:user_id;primaryKey"`
	FullName  string    `json:"fullName" gorm:"column:full_name"`
	Phone     string    `json:"phone" gorm:"column:phone"`
	AvatarURL string    `json:"avatarUrl" gorm:"column:avatar_url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Profile) TableName() string {
	return "profiles"
}
