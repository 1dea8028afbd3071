package models

import (
	"time"

	"gorm.io/datatypes"
)

// Author is the one-to-one writing profile a user opts into. Exactly one
// Author row may exist per user.
type Author struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"uniqueIndex" json:"user"`
	User        User              `gorm:"foreignKey:UserID" json:"user_details"`
	Bio         string            `gorm:"type:text" json:"bio" validate:"max=2000"`
	SocialLinks datatypes.JSONMap `gorm:"type:json" json:"social_links"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}
