package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

// HandleListAuthors returns all author profiles.
func HandleListAuthors(c *fiber.Ctx) error {
	authors, err := repository.GetGlobalFactory().GetAuthorRepository().List()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving authors", fiber.Map{"detail": err.Error()})
	}

	payload := make([]fiber.Map, 0, len(authors))
	for i := range authors {
		payload = append(payload, authorPayload(&authors[i]))
	}

	return SuccessResponse(c, fiber.StatusOK, payload, "Authors retrieved successfully")
}

// HandleCreateAuthor creates the author profile for the authenticated user
// and flips their author flag. A second profile for the same user conflicts.
func HandleCreateAuthor(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	exists, err := factory.GetAuthorRepository().ExistsForUser(userCtx.UserID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating author profile", fiber.Map{"detail": err.Error()})
	}
	if exists {
		return ErrorResponse(c, fiber.StatusBadRequest, "Author profile already exists", nil)
	}

	var req struct {
		Bio         string                 `json:"bio"`
		SocialLinks map[string]interface{} `json:"social_links"`
	}
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	author := &models.Author{
		UserID:      userCtx.UserID,
		Bio:         req.Bio,
		SocialLinks: datatypes.JSONMap(req.SocialLinks),
	}
	if err := factory.GetAuthorRepository().Create(author); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating author profile", fiber.Map{"detail": err.Error()})
	}

	userRepo := factory.GetUserRepository()
	user, err := userRepo.GetByID(userCtx.UserID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating author profile", fiber.Map{"detail": err.Error()})
	}
	user.IsAuthor = true
	if err := userRepo.Update(user); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating author profile", fiber.Map{"detail": err.Error()})
	}

	author.User = *user

	return SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"author": authorPayload(author),
		"user":   userPayload(user, true),
	}, "Author profile created successfully")
}

// HandleGetAuthor resolves the parameter first as an author id, then as
// the owning user's id.
func HandleGetAuthor(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid author id", nil)
	}

	authorRepo := repository.GetGlobalFactory().GetAuthorRepository()

	author, err := authorRepo.GetByID(id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving author", fiber.Map{"detail": err.Error()})
		}
		author, err = authorRepo.GetByUserID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrorResponse(c, fiber.StatusNotFound, "Author not found", nil)
			}
			return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving author", fiber.Map{"detail": err.Error()})
		}
	}

	return SuccessResponse(c, fiber.StatusOK, authorPayload(author), "Author retrieved successfully")
}

// HandleUpdateAuthor edits bio/social links. Owner or admin only.
func HandleUpdateAuthor(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid author id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	authorRepo := repository.GetGlobalFactory().GetAuthorRepository()

	author, err := authorRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Author not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating author", fiber.Map{"detail": err.Error()})
	}

	if author.UserID != userCtx.UserID && !userCtx.IsAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "You can only edit your own profile", nil)
	}

	var req struct {
		Bio         *string                `json:"bio"`
		SocialLinks map[string]interface{} `json:"social_links"`
	}
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	if req.Bio != nil {
		author.Bio = *req.Bio
	}
	if req.SocialLinks != nil {
		author.SocialLinks = datatypes.JSONMap(req.SocialLinks)
	}

	if err := authorRepo.Update(author); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating author", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, authorPayload(author), "Author updated successfully")
}

// HandleDeleteAuthor removes the profile and clears the user's author
// flag. Owner or admin only.
func HandleDeleteAuthor(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid author id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()
	authorRepo := factory.GetAuthorRepository()

	author, err := authorRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Author not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting author", fiber.Map{"detail": err.Error()})
	}

	if author.UserID != userCtx.UserID && !userCtx.IsAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "You can only delete your own profile", nil)
	}

	if err := authorRepo.Delete(author.ID); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting author", fiber.Map{"detail": err.Error()})
	}

	userRepo := factory.GetUserRepository()
	if user, err := userRepo.GetByID(author.UserID); err == nil {
		user.IsAuthor = false
		if err := userRepo.Update(user); err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting author", fiber.Map{"detail": err.Error()})
		}
	}

	return SuccessResponse(c, fiber.StatusOK, nil, "Author profile deleted successfully")
}
