package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/utils"
)

type categoryRequest struct {
	Name     *string `json:"name"`
	IconName *string `json:"icon_name"`
	IsActive *bool   `json:"is_active"`
}

// HandleListCategories lists active categories, name-ordered, with search
// over name and icon name.
func HandleListCategories(c *fiber.Ctx) error {
	page, limit := ParsePagination(c, 20, 100)
	search := c.Query("search")

	categories, total, err := repository.GetGlobalFactory().GetCategoryRepository().ListActive(search, (page-1)*limit, limit)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving categories", fiber.Map{"detail": err.Error()})
	}

	payload := make([]fiber.Map, 0, len(categories))
	for i := range categories {
		payload = append(payload, categoryPayload(&categories[i]))
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"results":    payload,
		"pagination": PaginationMeta(page, limit, total),
	}, "Categories retrieved successfully")
}

// HandleAllCategories returns every active category, unpaginated, for
// dropdowns.
func HandleAllCategories(c *fiber.Ctx) error {
	categories, err := repository.GetGlobalFactory().GetCategoryRepository().AllActive()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving categories", fiber.Map{"detail": err.Error()})
	}

	payload := make([]fiber.Map, 0, len(categories))
	for i := range categories {
		payload = append(payload, categoryPayload(&categories[i]))
	}

	return SuccessResponse(c, fiber.StatusOK, payload, "Categories retrieved successfully")
}

// HandleCreateCategory creates a category. Name duplicates are rejected
// case-insensitively.
func HandleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}
	if req.Name == nil || *req.Name == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"name": "This field is required"})
	}

	categoryRepo := repository.GetGlobalFactory().GetCategoryRepository()

	taken, err := categoryRepo.NameExists(*req.Name)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating category", fiber.Map{"detail": err.Error()})
	}
	if taken {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"name": "A category with this name already exists"})
	}

	category := &models.Category{
		Name:     *req.Name,
		IsActive: true,
	}
	if req.IconName != nil {
		category.IconName = *req.IconName
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := categoryRepo.Create(category); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating category", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusCreated, categoryPayload(category), "Category created successfully")
}

// HandleUpdateCategory edits a category. Renames re-derive the slug.
func HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid category id", nil)
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	categoryRepo := repository.GetGlobalFactory().GetCategoryRepository()
	category, err := categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating category", fiber.Map{"detail": err.Error()})
	}

	if req.Name != nil && *req.Name != category.Name {
		taken, err := categoryRepo.NameExists(*req.Name)
		if err != nil {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating category", fiber.Map{"detail": err.Error()})
		}
		if taken {
			return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"name": "A category with this name already exists"})
		}
		category.Name = *req.Name
		category.Slug = utils.Slugify(*req.Name)
	}
	if req.IconName != nil {
		category.IconName = *req.IconName
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := categoryRepo.Update(category); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating category", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, categoryPayload(category), "Category updated successfully")
}

// HandleDeleteCategory removes a category. Articles keep existing with a
// dangling-free nil category.
func HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid category id", nil)
	}

	categoryRepo := repository.GetGlobalFactory().GetCategoryRepository()
	if _, err := categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting category", fiber.Map{"detail": err.Error()})
	}

	if err := categoryRepo.Delete(id); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting category", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, nil, "Category deleted successfully")
}

// categoryWithArticles loads the paginated published articles for a
// resolved category.
func categoryWithArticles(c *fiber.Ctx, category *models.Category) error {
	page, limit := ParsePagination(c, 10, 100)

	articles, total, err := repository.GetGlobalFactory().GetArticleRepository().ByCategory(category.ID, (page-1)*limit, limit)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving category articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"category":   categoryPayload(category),
		"results":    articleListPayloads(articles),
		"pagination": PaginationMeta(page, limit, total),
	}, "Category articles retrieved successfully")
}

// HandleCategoryByID returns a category and its published articles.
func HandleCategoryByID(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid category id", nil)
	}

	category, err := repository.GetGlobalFactory().GetCategoryRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving category", fiber.Map{"detail": err.Error()})
	}

	return categoryWithArticles(c, category)
}

// HandleCategoryBySlug resolves the slug by de-hyphenating it and matching
// the category NAME case-insensitively, the lookup existing clients
// depend on.
func HandleCategoryBySlug(c *fiber.Ctx) error {
	name := utils.SlugToName(c.Params("slug"))

	category, err := repository.GetGlobalFactory().GetCategoryRepository().GetByNameFold(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving category", fiber.Map{"detail": err.Error()})
	}

	return categoryWithArticles(c, category)
}
