package repository

import (
	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// bookmarkRepository implements the BookmarkRepository interface
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository instance
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create creates a new bookmark
func (r *bookmarkRepository) Create(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

// PairExists reports whether the user already bookmarked the article
func (r *bookmarkRepository) PairExists(userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser retrieves the bookmarks of one user, newest first
func (r *bookmarkRepository) ListByUser(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.
		Preload("Article").
		Preload("Article.Author.User").
		Preload("Article.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// GetByIDForUser retrieves a bookmark only when it belongs to the given
// user. Another user's bookmark id resolves to not-found, never to the row.
func (r *bookmarkRepository) GetByIDForUser(id, userID uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// Delete removes a bookmark
func (r *bookmarkRepository) Delete(id uint) error {
	return r.db.Delete(&models.Bookmark{}, id).Error
}
