package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarsBecker/StoryPress/internal/pkg/token"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

func newAuthTestApp(tokens *token.Manager) *fiber.App {
	app := fiber.New()
	app.Use(BearerAuth(tokens))
	app.Get("/me", RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(usercontext.GetUserContext(c))
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAuthWithoutToken(t *testing.T) {
	app := newAuthTestApp(token.NewManager("s", time.Minute, time.Hour))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthWithValidToken(t *testing.T) {
	tokens := token.NewManager("s", time.Minute, time.Hour)
	app := newAuthTestApp(tokens)

	pair, err := tokens.IssuePair(7, "a@example.com", false, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshTokenRejectedForAuth(t *testing.T) {
	tokens := token.NewManager("s", time.Minute, time.Hour)
	app := newAuthTestApp(tokens)

	pair, err := tokens.IssuePair(7, "a@example.com", false, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Refresh)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	tokens := token.NewManager("s", time.Minute, time.Hour)
	app := newAuthTestApp(tokens)

	userPair, err := tokens.IssuePair(7, "a@example.com", false, true)
	require.NoError(t, err)
	adminPair, err := tokens.IssuePair(1, "root@example.com", true, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userPair.Access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminPair.Access)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
