package repository

import (
	"strings"

	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByNameFold retrieves a category by name, compared case-insensitively.
// This backs the lookup-by-slug endpoint, which matches the de-hyphenated
// slug against the name column rather than the stored slug.
func (r *categoryRepository) GetByNameFold(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// NameExists reports whether a category with this name exists, case-insensitively
func (r *categoryRepository) NameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}

// ListActive retrieves a page of active categories, name-ordered, with the
// total count. search filters by name or icon name substring.
func (r *categoryRepository) ListActive(search string, offset, limit int) ([]models.Category, int64, error) {
	query := r.db.Model(&models.Category{}).Where("is_active = ?", true)

	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		query = query.Where("name LIKE ? OR icon_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := query.Order("name").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}

// AllActive retrieves every active category, name-ordered
func (r *categoryRepository) AllActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("is_active = ?", true).Order("name").Find(&categories).Error
	return categories, err
}

// Update updates an existing category
func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
