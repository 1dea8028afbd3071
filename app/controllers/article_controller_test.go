package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
)

// setupArticleTestApp wires the article routes against an in-memory
// database. The repository factory is a process-wide singleton, so every
// test in this package shares the database it was first given.
func setupArticleTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Category{},
		&models.Article{},
	))

	repository.InitializeFactory(db)

	app := fiber.New()
	app.Post("/articles/:id/increment-views", HandleIncrementViews)
	app.Get("/articles/search", HandleSearchArticles)
	return app, db
}

func TestIncrementViewsCountsSoftDeletedArticles(t *testing.T) {
	app, db := setupArticleTestApp(t)

	user := &models.User{FullName: "Mira Holt", Email: "mira@example.com", Password: "x", IsActive: true, IsAuthor: true}
	require.NoError(t, db.Create(user).Error)
	author := &models.Author{UserID: user.ID}
	require.NoError(t, db.Create(author).Error)

	article := &models.Article{
		Title:       "Removed Story",
		Content:     "body",
		AuthorID:    author.ID,
		IsPublished: true,
		IsDeleted:   true,
	}
	require.NoError(t, db.Create(article).Error)

	req := httptest.NewRequest(fiber.MethodPost, "/articles/1/increment-views", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID        uint `json:"id"`
			ViewCount uint `json:"view_count"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, article.ID, body.Data.ID)
	assert.EqualValues(t, 1, body.Data.ViewCount)
	assert.Equal(t, "View count incremented", body.Message)
}

func TestIncrementViewsUnknownArticle(t *testing.T) {
	app, _ := setupArticleTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/articles/424242/increment-views", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchWithoutQueryReturnsEmptyResult(t *testing.T) {
	app, _ := setupArticleTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/articles/search", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Results []json.RawMessage `json:"results"`
			Count   int               `json:"count"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Data.Results)
	assert.Equal(t, 0, body.Data.Count)
	assert.Equal(t, "Please provide a search query", body.Message)
}
