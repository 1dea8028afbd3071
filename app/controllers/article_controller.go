package controllers

import (
	"errors"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/mediastore"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
	"github.com/LarsBecker/StoryPress/internal/pkg/utils"
)

var (
	mediaStore     *mediastore.Store
	mediaStoreOnce sync.Once
)

func getMediaStore() *mediastore.Store {
	mediaStoreOnce.Do(func() {
		store, err := mediastore.NewStoreFromEnv()
		if err != nil {
			log.Errorf("media store misconfigured: %v", err)
			store = mediastore.NewStore(&mediastore.Config{Root: "uploads", PublicPath: "/uploads"})
		}
		mediaStore = store
	})
	return mediaStore
}

type articleRequest struct {
	Title         *string `json:"title" form:"title"`
	Slug          *string `json:"slug" form:"slug"`
	Content       *string `json:"content" form:"content"`
	Excerpt       *string `json:"excerpt" form:"excerpt"`
	FeaturedImage *string `json:"featured_image" form:"featured_image"`
	CategoryID    *uint   `json:"category_id" form:"category_id"`
	AuthorID      *uint   `json:"author_id" form:"author_id"`
	IsPublished   *bool   `json:"is_published" form:"is_published"`
	IsDeleted     *bool   `json:"is_deleted" form:"is_deleted"`
}

// storeUploadedImage saves a multipart featured image if one was sent.
// Returns the stored public path, or "" when the request carried no file.
func storeUploadedImage(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("featured_image")
	if err != nil {
		return "", nil
	}
	return getMediaStore().SaveFeaturedImage(fileHeader)
}

// HandleCreateArticle creates an article for the requesting author. Admins
// without an author profile may create on behalf of another author by
// passing author_id.
func HandleCreateArticle(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	author, err := factory.GetAuthorRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating article", fiber.Map{"detail": err.Error()})
		}
		if !userCtx.IsAdmin {
			return ErrorResponse(c, fiber.StatusForbidden, "Only authors or admin can create articles", nil)
		}
		author = nil
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"title": "This field is required"})
	}

	article := &models.Article{
		Title: *req.Title,
	}
	if req.Slug != nil {
		article.Slug = *req.Slug
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	}
	if req.CategoryID != nil && *req.CategoryID != 0 {
		article.CategoryID = req.CategoryID
	}
	if req.IsPublished != nil {
		article.IsPublished = *req.IsPublished
	}

	switch {
	case author != nil:
		article.AuthorID = author.ID
	case req.AuthorID != nil && *req.AuthorID != 0:
		article.AuthorID = *req.AuthorID
	default:
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"author_id": "This field is required"})
	}

	if storedPath, err := storeUploadedImage(c); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"featured_image": err.Error()})
	} else if storedPath != "" {
		article.FeaturedImage = storedPath
	}

	articleRepo := factory.GetArticleRepository()

	slug := article.Slug
	if slug == "" {
		slug = utils.Slugify(article.Title)
	}
	exists, err := articleRepo.SlugExists(slug)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating article", fiber.Map{"detail": err.Error()})
	}
	if exists {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"slug": "An article with this slug already exists"})
	}

	if err := articleRepo.Create(article); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating article", fiber.Map{"detail": err.Error()})
	}

	created, err := articleRepo.GetAnyByID(article.ID)
	if err == nil {
		article = created
	}

	return SuccessResponse(c, fiber.StatusCreated, articleDetailPayload(article), "Article created successfully")
}

// HandleMyArticles lists the requesting author's articles, drafts included.
func HandleMyArticles(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	author, err := factory.GetAuthorRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Author profile not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}

	articles, err := factory.GetArticleRepository().ByAuthorAll(author.ID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"results": articleListPayloads(articles),
		"count":   len(articles),
	}, "Your articles retrieved successfully")
}

// HandleListArticles lists published articles with pagination and sort.
func HandleListArticles(c *fiber.Ctx) error {
	page, limit := ParsePagination(c, 10, 100)

	sort := repository.ArticleSort(c.Query("sort", string(repository.SortDateDesc)))
	switch sort {
	case repository.SortDateDesc, repository.SortDateAsc, repository.SortViewsDesc, repository.SortViewsAsc:
	default:
		sort = repository.SortDateDesc
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()

	articles, err := articleRepo.ListPublished(sort, (page-1)*limit, limit)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}
	total, err := articleRepo.CountPublished()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"results":    articleListPayloads(articles),
		"pagination": PaginationMeta(page, limit, total),
	}, "Articles retrieved successfully")
}

// HandleLatestArticles returns the newest published articles.
func HandleLatestArticles(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	articles, err := repository.GetGlobalFactory().GetArticleRepository().Latest(limit)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, articleListPayloads(articles), "Latest articles retrieved successfully")
}

// HandleSearchArticles searches published articles over title, excerpt,
// content, category name and author name.
func HandleSearchArticles(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"results": []fiber.Map{},
			"count":   0,
		}, "Please provide a search query")
	}

	articles, err := repository.GetGlobalFactory().GetArticleRepository().Search(query)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error searching articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"results": articleListPayloads(articles),
		"count":   len(articles),
	}, "Search results retrieved successfully")
}

// HandleArticlesByAuthor lists an author's published articles.
func HandleArticlesByAuthor(c *fiber.Ctx) error {
	authorID, err := ParseIDParam(c, "author_id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid author id", nil)
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetAuthorRepository().GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Author not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}

	articles, err := factory.GetArticleRepository().ByAuthorPublished(authorID)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving articles", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"results": articleListPayloads(articles),
		"count":   len(articles),
	}, "Articles retrieved successfully")
}

// HandleRetrieveArticle fetches any non-deleted article by id, drafts
// included. No view count side effect.
func HandleRetrieveArticle(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid article id", nil)
	}

	article, err := repository.GetGlobalFactory().GetArticleRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving article", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, articleDetailPayload(article), "Article retrieved successfully")
}

// HandleArticleBySlug fetches a published article by slug and counts the
// view. The increment is a single UPDATE expression so concurrent reads
// never lose counts.
func HandleArticleBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	articleRepo := repository.GetGlobalFactory().GetArticleRepository()

	article, err := articleRepo.GetPublishedBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving article", fiber.Map{"detail": err.Error()})
	}

	if err := articleRepo.IncrementViewCount(article.ID); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving article", fiber.Map{"detail": err.Error()})
	}
	article.ViewCount++

	return SuccessResponse(c, fiber.StatusOK, articleDetailPayload(article), "Article details fetched successfully")
}

// HandleIncrementViews bumps the view counter without returning the body.
func HandleIncrementViews(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid article id", nil)
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	if err := articleRepo.IncrementViewCount(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error incrementing views", fiber.Map{"detail": err.Error()})
	}

	article, err := articleRepo.GetAnyByID(id)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error incrementing views", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":         article.ID,
		"view_count": article.ViewCount,
	}, "View count incremented")
}

// HandleUpdateArticle edits an article. Owners may change the content
// fields and publish state; admins may additionally move the article to
// another author or category and toggle the deleted flag.
func HandleUpdateArticle(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid article id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()
	articleRepo := factory.GetArticleRepository()

	article, err := articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating article", fiber.Map{"detail": err.Error()})
	}

	isOwner := false
	if author, err := factory.GetAuthorRepository().GetByUserID(userCtx.UserID); err == nil {
		isOwner = author.ID == article.AuthorID
	}
	if !isOwner && !userCtx.IsAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to edit this article", nil)
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			article.CategoryID = nil
			article.Category = nil
		} else {
			article.CategoryID = req.CategoryID
		}
	}
	if req.IsPublished != nil {
		article.IsPublished = *req.IsPublished
	}

	// admin-only fields
	if userCtx.IsAdmin {
		if req.AuthorID != nil && *req.AuthorID != 0 {
			article.AuthorID = *req.AuthorID
		}
		if req.IsDeleted != nil {
			article.IsDeleted = *req.IsDeleted
		}
	}

	if storedPath, err := storeUploadedImage(c); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"featured_image": err.Error()})
	} else if storedPath != "" {
		article.FeaturedImage = storedPath
	}

	if err := articleRepo.Update(article); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating article", fiber.Map{"detail": err.Error()})
	}

	updated, err := articleRepo.GetAnyByID(article.ID)
	if err == nil {
		article = updated
	}

	return SuccessResponse(c, fiber.StatusOK, articleDetailPayload(article), "Article updated successfully")
}

// HandleDeleteArticle removes an article permanently. A failed image file
// removal is logged but never undoes the database delete.
func HandleDeleteArticle(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid article id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()
	articleRepo := factory.GetArticleRepository()

	article, err := articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "Article not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting article", fiber.Map{"detail": err.Error()})
	}

	isOwner := false
	if author, err := factory.GetAuthorRepository().GetByUserID(userCtx.UserID); err == nil {
		isOwner = author.ID == article.AuthorID
	}
	if !isOwner && !userCtx.IsAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to delete this article", nil)
	}

	if err := articleRepo.Delete(article.ID); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting article", fiber.Map{"detail": err.Error()})
	}

	if article.FeaturedImage != "" {
		if err := getMediaStore().Delete(article.FeaturedImage); err != nil {
			log.Warnf("failed to remove featured image for article %d: %v", article.ID, err)
		}
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": article.ID}, "Article deleted successfully")
}
