package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsBecker/StoryPress/app/controllers"
	"github.com/LarsBecker/StoryPress/internal/pkg/middleware"
)

func (h ApiRouter) registerAdminRoutes(v1 fiber.Router) {
	admin := v1.Group("/users/admin", middleware.RequireAdmin)

	admin.Get("/users", controllers.HandleAdminListUsers)
	admin.Put("/users/:id", controllers.HandleAdminUpdateUser)
	admin.Delete("/users/:id", controllers.HandleAdminDeleteUser)
	admin.Get("/dashboard", controllers.HandleAdminDashboard)

	analytics := v1.Group("/analytics", middleware.RequireAdmin)
	analytics.Get("/recent-activity", controllers.HandleRecentActivity)
	analytics.Get("/authors/performance", controllers.HandleAuthorPerformance)
}
