package repository

import (
	"strings"
	"time"

	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether a user with this email address is already
// registered, compared case-insensitively.
func (r *userRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user permanently
func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List retrieves users matching the admin filter, newest first
func (r *userRepository) List(filter UserFilter) ([]models.User, error) {
	query := r.db.Model(&models.User{})

	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("fullname LIKE ? OR email LIKE ?", pattern, pattern)
	}

	switch filter.Role {
	case models.ROLE_ADMIN:
		query = query.Where("is_admin = ?", true)
	case models.ROLE_AUTHOR:
		query = query.Where("is_author = ?", true)
	case models.ROLE_READER:
		query = query.Where("is_admin = ? AND is_author = ?", false, false)
	}

	switch filter.Status {
	case models.STATUS_ACTIVE:
		query = query.Where("is_active = ?", true)
	case models.STATUS_SUSPENDED:
		query = query.Where("is_active = ?", false)
	}

	var users []models.User
	err := query.Order("date_joined DESC").Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountJoinedSince counts users registered at or after the given time
func (r *userRepository) CountJoinedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("date_joined >= ?", since).Count(&count).Error
	return count, err
}

// GetStats returns the role/status breakdown for the admin views
func (r *userRepository) GetStats() (*UserStats, error) {
	var stats UserStats

	if err := r.db.Model(&models.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("is_author = ?", true).Count(&stats.Authors).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&stats.Admins).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("is_admin = ? AND is_author = ?", false, false).Count(&stats.Readers).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
