package models

import (
	"time"
)

type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_bookmark_user_article" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ArticleID uint      `gorm:"uniqueIndex:idx_bookmark_user_article" json:"article"`
	Article   Article   `gorm:"foreignKey:ArticleID" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
