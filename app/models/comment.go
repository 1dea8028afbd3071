package models

import (
	"time"
)

// Comment threads one level deep: a reply points at its parent comment and
// never at another reply.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index" json:"article"`
	Article   Article   `gorm:"foreignKey:ArticleID" json:"-"`
	UserID    uint      `gorm:"index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ParentID  *uint     `gorm:"index" json:"parent,omitempty"`
	Content   string    `gorm:"type:text" json:"content" validate:"required,min=1"`
	Likes     []User    `gorm:"many2many:comment_likes;" json:"-"`
	Replies   []Comment `gorm:"foreignKey:ParentID" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
