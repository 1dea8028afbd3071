package repository

import (
	"errors"

	"github.com/LarsBecker/StoryPress/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment or reply
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment with its article and the article's author
func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.
		Preload("User").
		Preload("Article").
		Preload("Article.Author").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// TopLevelByArticle retrieves the parent-level comments of an article,
// newest first, with repliers and likers preloaded.
func (r *commentRepository) TopLevelByArticle(articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("User").
		Preload("Likes").
		Preload("Replies").
		Preload("Replies.User").
		Where("article_id = ? AND parent_id IS NULL", articleID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// Replies retrieves the replies of one comment, oldest first
func (r *commentRepository) Replies(commentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.
		Preload("User").
		Where("parent_id = ?", commentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// Update updates an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a comment and its replies
func (r *commentRepository) Delete(id uint) error {
	if err := r.db.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Comment{}, id).Error
}

// ToggleLike adds the user to the comment's likers if absent, else removes
// them. Returns whether the comment is liked after the call. Calling twice
// restores the original likers set.
func (r *commentRepository) ToggleLike(commentID, userID uint) (bool, error) {
	var like models.CommentLike
	err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			like = models.CommentLike{CommentID: commentID, UserID: userID}
			return true, r.db.Create(&like).Error
		}
		return false, err
	}

	return false, r.db.
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error
}

// LikeCount counts the likers of one comment
func (r *commentRepository) LikeCount(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
