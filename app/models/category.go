package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/internal/pkg/utils"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;type:varchar(100)" json:"name" validate:"required,min=2,max=100"`
	Slug      string    `gorm:"uniqueIndex;type:varchar(100)" json:"slug"`
	IconName  string    `gorm:"type:varchar(50)" json:"icon_name" validate:"max=50"`
	IsActive  bool      `gorm:"type:tinyint(1);default:1" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeSave keeps the slug in sync with the name-derived form when unset.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Name)
	}
	return nil
}
