package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

// HandleListBookmarks returns the requesting user's bookmarks with their
// articles.
func HandleListBookmarks(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	bookmarks, err := repository.GetGlobalFactory().GetBookmarkRepository().ListByUser(userCtx.UserID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving bookmarks", fiber.Map{"detail": err.Error()})
	}

	payload := make([]fiber.Map, 0, len(bookmarks))
	for i := range bookmarks {
		payload = append(payload, bookmarkPayload(&bookmarks[i]))
	}

	return SuccessResponse(c, fiber.StatusOK, payload, "Bookmarks retrieved successfully")
}

// HandleCreateBookmark bookmarks an article for the requesting user. A
// duplicate pair is a conflict.
func HandleCreateBookmark(c *fiber.Ctx) error {
	var req struct {
		ArticleID uint `json:"article_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.ArticleID == 0 {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"article_id": "This field is required"})
	}

	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	if _, err := factory.GetArticleRepository().GetByID(req.ArticleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating bookmark", fiber.Map{"detail": err.Error()})
	}

	bookmarkRepo := factory.GetBookmarkRepository()

	exists, err := bookmarkRepo.PairExists(userCtx.UserID, req.ArticleID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating bookmark", fiber.Map{"detail": err.Error()})
	}
	if exists {
		return ErrorResponse(c, fiber.StatusBadRequest, "Article is already bookmarked", nil)
	}

	bookmark := &models.Bookmark{
		UserID:    userCtx.UserID,
		ArticleID: req.ArticleID,
	}
	if err := bookmarkRepo.Create(bookmark); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating bookmark", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusCreated, bookmarkPayload(bookmark), "Bookmark created successfully")
}

// HandleDeleteBookmark removes one of the requesting user's bookmarks.
// Someone else's bookmark id reads as not found.
func HandleDeleteBookmark(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid bookmark id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	bookmarkRepo := repository.GetGlobalFactory().GetBookmarkRepository()

	bookmark, err := bookmarkRepo.GetByIDForUser(id, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Bookmark not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting bookmark", fiber.Map{"detail": err.Error()})
	}

	if err := bookmarkRepo.Delete(bookmark.ID); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting bookmark", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, nil, "Bookmark deleted successfully")
}
