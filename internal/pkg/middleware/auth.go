package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsBecker/StoryPress/internal/pkg/token"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

// BearerAuth verifies the Authorization bearer token and, when valid, stores
// the user context for downstream handlers. Requests without a usable token
// pass through anonymous; handlers that need auth gate on RequireAuth.
func BearerAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearerToken(c)
		if raw == "" {
			return c.Next()
		}

		claims, err := tokens.ParseAccess(raw)
		if err != nil {
			// Expired or garbage token: treat the request as anonymous
			// rather than failing public endpoints.
			return c.Next()
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     claims.UserID,
			Email:      claims.Email,
			IsLoggedIn: true,
			IsAdmin:    claims.IsAdmin,
			IsAuthor:   claims.IsAuthor,
		})

		return c.Next()
	}
}

// RequireAuth ensures an authenticated user and returns the JSON envelope 401 otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"data":    fiber.Map{},
			"message": "Authentication required",
			"errors":  fiber.Map{"detail": "Authentication credentials were not provided."},
		})
	}
	return c.Next()
}

// RequireAdmin ensures an authenticated admin.
func RequireAdmin(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"data":    fiber.Map{},
			"message": "Authentication required",
			"errors":  fiber.Map{"detail": "Authentication credentials were not provided."},
		})
	}
	if !ctx.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"data":    fiber.Map{},
			"message": "Permission denied",
			"errors":  fiber.Map{"detail": "Admin privileges required."},
		})
	}
	return c.Next()
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
