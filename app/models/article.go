package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/internal/pkg/utils"
)

// Article is an author-owned content record. is_deleted marks soft deletion
// and excludes the row from every default listing; a separate hard-delete
// path removes the row entirely.
type Article struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(200)" json:"title" validate:"required,min=3,max=200"`
	Slug          string    `gorm:"uniqueIndex;type:varchar(200)" json:"slug"`
	Content       string    `gorm:"type:longtext" json:"content" validate:"required"`
	Excerpt       string    `gorm:"type:text" json:"excerpt"`
	FeaturedImage string    `gorm:"type:varchar(500)" json:"featured_image"`
	AuthorID      uint      `gorm:"index" json:"author"`
	Author        Author    `gorm:"foreignKey:AuthorID" json:"-"`
	CategoryID    *uint     `gorm:"index" json:"category"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"-"`
	ViewCount     uint      `gorm:"default:0" json:"view_count"`
	IsPublished   bool      `gorm:"type:tinyint(1);default:0" json:"is_published"`
	IsDeleted     bool      `gorm:"type:tinyint(1);default:0;index" json:"is_deleted"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}

// BeforeSave derives the slug from the title when none is set. An existing
// slug is never rewritten, so re-saving keeps the published URL stable.
func (a *Article) BeforeSave(tx *gorm.DB) error {
	if a.Slug == "" {
		a.Slug = utils.Slugify(a.Title)
	}
	return nil
}
