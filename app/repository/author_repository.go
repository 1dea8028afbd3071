package repository

import (
	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// authorRepository implements the AuthorRepository interface
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository instance
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// Create creates a new author profile
func (r *authorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

// GetByID retrieves an author profile by its ID
func (r *authorRepository) GetByID(id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.Preload("User").First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByUserID retrieves the author profile owned by the given user
func (r *authorRepository) GetByUserID(userID uint) (*models.Author, error) {
	var author models.Author
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// ExistsForUser reports whether the user already has an author profile
func (r *authorRepository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Author{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// List retrieves all author profiles with their owning users
func (r *authorRepository) List() ([]models.Author, error) {
	var authors []models.Author
	err := r.db.Preload("User").Order("created_at DESC").Find(&authors).Error
	return authors, err
}

// Update updates an existing author profile
func (r *authorRepository) Update(author *models.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author profile
func (r *authorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Author{}, id).Error
}
