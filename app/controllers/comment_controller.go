package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

type commentRequest struct {
	Content string `json:"content"`
}

// HandleListComments returns an article's top-level comments with nested
// replies and like counts.
func HandleListComments(c *fiber.Ctx) error {
	articleID, err := ParseIDParam(c, "article_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid article id", nil)
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetArticleRepository().GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving comments", fiber.Map{"detail": err.Error()})
	}

	comments, err := factory.GetCommentRepository().TopLevelByArticle(articleID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving comments", fiber.Map{"detail": err.Error()})
	}

	payload := make([]fiber.Map, 0, len(comments))
	for i := range comments {
		payload = append(payload, commentPayload(&comments[i]))
	}

	return SuccessResponse(c, fiber.StatusOK, payload, "Comments retrieved successfully")
}

// HandleCreateComment posts a top-level comment on an article.
func HandleCreateComment(c *fiber.Ctx) error {
	articleID, err := ParseIDParam(c, "article_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid article id", nil)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"content": "This field is required"})
	}

	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	if _, err := factory.GetArticleRepository().GetByID(articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating comment", fiber.Map{"detail": err.Error()})
	}

	comment := &models.Comment{
		ArticleID: articleID,
		UserID:    userCtx.UserID,
		Content:   req.Content,
	}
	if err := factory.GetCommentRepository().Create(comment); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating comment", fiber.Map{"detail": err.Error()})
	}

	if created, err := factory.GetCommentRepository().GetByID(comment.ID); err == nil {
		comment = created
	}

	return SuccessResponse(c, fiber.StatusCreated, commentPayload(comment), "Comment created successfully")
}

// HandleReplyToComment posts a reply to a top-level comment. Only the
// article's author may reply.
func HandleReplyToComment(c *fiber.Ctx) error {
	commentID, err := ParseIDParam(c, "comment_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid comment id", nil)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"content": "This field is required"})
	}

	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()
	commentRepo := factory.GetCommentRepository()

	parent, err := commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating reply", fiber.Map{"detail": err.Error()})
	}
	if parent.ParentID != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Cannot reply to a reply", nil)
	}

	if parent.Article.Author.UserID != userCtx.UserID {
		return ErrorResponse(c, fiber.StatusForbidden, "Only the article's author can reply to comments", nil)
	}

	reply := &models.Comment{
		ArticleID: parent.ArticleID,
		UserID:    userCtx.UserID,
		ParentID:  &parent.ID,
		Content:   req.Content,
	}
	if err := commentRepo.Create(reply); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating reply", fiber.Map{"detail": err.Error()})
	}

	if created, err := commentRepo.GetByID(reply.ID); err == nil {
		reply = created
	}

	return SuccessResponse(c, fiber.StatusCreated, commentPayload(reply), "Reply created successfully")
}

// HandleToggleCommentLike flips the requesting user's like on a comment.
func HandleToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := ParseIDParam(c, "comment_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid comment id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	commentRepo := repository.GetGlobalFactory().GetCommentRepository()

	if _, err := commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error toggling like", fiber.Map{"detail": err.Error()})
	}

	liked, err := commentRepo.ToggleLike(commentID, userCtx.UserID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error toggling like", fiber.Map{"detail": err.Error()})
	}

	count, err := commentRepo.LikeCount(commentID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error toggling like", fiber.Map{"detail": err.Error()})
	}

	message := "Comment liked"
	if !liked {
		message = "Comment unliked"
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"liked":      liked,
		"like_count": count,
	}, message)
}

// HandleUpdateComment edits a comment's content. Owner or admin only.
func HandleUpdateComment(c *fiber.Ctx) error {
	commentID, err := ParseIDParam(c, "comment_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid comment id", nil)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"content": "This field is required"})
	}

	userCtx := usercontext.GetUserContext(c)
	commentRepo := repository.GetGlobalFactory().GetCommentRepository()

	comment, err := commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating comment", fiber.Map{"detail": err.Error()})
	}

	if comment.UserID != userCtx.UserID && !userCtx.IsAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "You can only edit your own comments", nil)
	}

	comment.Content = req.Content
	if err := commentRepo.Update(comment); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating comment", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, commentPayload(comment), "Comment updated successfully")
}

// HandleDeleteComment removes a comment and its replies. Owner or admin
// only.
func HandleDeleteComment(c *fiber.Ctx) error {
	commentID, err := ParseIDParam(c, "comment_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid comment id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	commentRepo := repository.GetGlobalFactory().GetCommentRepository()

	comment, err := commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Comment not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting comment", fiber.Map{"detail": err.Error()})
	}

	if comment.UserID != userCtx.UserID && !userCtx.IsAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "You can only delete your own comments", nil)
	}

	if err := commentRepo.Delete(commentID); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting comment", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
