package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsBecker/StoryPress/app/controllers"
	"github.com/LarsBecker/StoryPress/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", newRateLimiter())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// The bearer middleware only resolves the user context; each route
	// decides whether it requires auth.
	v1 := api.Group("/v1", middleware.BearerAuth(controllers.TokenManager()))

	h.registerUserRoutes(v1)
	h.registerContentRoutes(v1)
	h.registerAdminRoutes(v1)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
