package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsBecker/StoryPress/app/controllers"
	"github.com/LarsBecker/StoryPress/internal/pkg/middleware"
)

func (h ApiRouter) registerUserRoutes(v1 fiber.Router) {
	users := v1.Group("/users")

	users.Post("/register", controllers.HandleRegister)
	users.Post("/login", controllers.HandleLogin)
	users.Post("/admin/login", controllers.HandleAdminLogin)
	users.Post("/token/refresh", controllers.HandleTokenRefresh)

	users.Get("/profile", middleware.RequireAuth, controllers.HandleGetProfile)
	users.Put("/profile", middleware.RequireAuth, controllers.HandleUpdateProfile)
}

func (h ApiRouter) registerContentRoutes(v1 fiber.Router) {
	authors := v1.Group("/authors")
	authors.Get("/list", controllers.HandleListAuthors)
	authors.Post("/create", middleware.RequireAuth, controllers.HandleCreateAuthor)
	authors.Put("/update/:id", middleware.RequireAuth, controllers.HandleUpdateAuthor)
	authors.Delete("/delete/:id", middleware.RequireAuth, controllers.HandleDeleteAuthor)
	authors.Get("/:id", controllers.HandleGetAuthor)

	articles := v1.Group("/articles")
	articles.Post("/create", middleware.RequireAuth, controllers.HandleCreateArticle)
	articles.Get("/my-articles", middleware.RequireAuth, controllers.HandleMyArticles)
	articles.Get("/list", controllers.HandleListArticles)
	articles.Get("/latest", controllers.HandleLatestArticles)
	articles.Get("/search", controllers.HandleSearchArticles)
	articles.Get("/author/:author_id", controllers.HandleArticlesByAuthor)
	articles.Get("/retrieve/:id", controllers.HandleRetrieveArticle)
	articles.Post("/:id/increment-views", controllers.HandleIncrementViews)
	articles.Put("/update/:id", middleware.RequireAuth, controllers.HandleUpdateArticle)
	articles.Delete("/delete/:id", middleware.RequireAuth, controllers.HandleDeleteArticle)
	// the slug route goes last so it never shadows the fixed paths
	articles.Get("/:slug", controllers.HandleArticleBySlug)

	categories := v1.Group("/categories")
	categories.Get("/list", controllers.HandleListCategories)
	categories.Get("/all", controllers.HandleAllCategories)
	categories.Post("/create", middleware.RequireAdmin, controllers.HandleCreateCategory)
	categories.Put("/update/:id", middleware.RequireAdmin, controllers.HandleUpdateCategory)
	categories.Delete("/delete/:id", middleware.RequireAdmin, controllers.HandleDeleteCategory)
	categories.Get("/slug/:slug", controllers.HandleCategoryBySlug)
	categories.Get("/:id", controllers.HandleCategoryByID)

	v1.Get("/articles/:article_id/comments", controllers.HandleListComments)
	v1.Post("/articles/:article_id/comments", middleware.RequireAuth, controllers.HandleCreateComment)
	v1.Post("/comments/:comment_id/reply", middleware.RequireAuth, controllers.HandleReplyToComment)
	v1.Post("/comments/:comment_id/like", middleware.RequireAuth, controllers.HandleToggleCommentLike)
	v1.Put("/comments/:comment_id", middleware.RequireAuth, controllers.HandleUpdateComment)
	v1.Delete("/comments/:comment_id", middleware.RequireAuth, controllers.HandleDeleteComment)

	bookmarks := v1.Group("/bookmarks", middleware.RequireAuth)
	bookmarks.Get("/", controllers.HandleListBookmarks)
	bookmarks.Post("/", controllers.HandleCreateBookmark)
	bookmarks.Delete("/:id", controllers.HandleDeleteBookmark)

	analytics := v1.Group("/analytics")
	analytics.Get("/views", controllers.HandleViewAnalytics)
	analytics.Get("/trending", controllers.HandleTrendingArticles)
	analytics.Get("/stats", controllers.HandlePlatformStats)
}
