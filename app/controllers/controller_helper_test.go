package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.StatusCreated, fiber.Map{"id": 7}, "Created")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Created", payload["message"])
	assert.Equal(t, map[string]interface{}{}, payload["errors"])
	assert.Equal(t, float64(7), payload["data"].(map[string]interface{})["id"])
}

func TestErrorResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"email": "Email is already registered"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, map[string]interface{}{}, payload["data"])
	assert.Equal(t, "Email is already registered", payload["errors"].(map[string]interface{})["email"])
}

func TestValidationErrorMap(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		FullName string `validate:"required,min=3"`
	}

	err := validator.New().Struct(form{Email: "not-an-email", FullName: "ab"})
	require.Error(t, err)

	out := ValidationErrorMap(err)
	assert.Equal(t, "Enter a valid email address", out["email"])
	assert.Equal(t, "Value is too short", out["fullname"])
}

func TestParsePaginationBounds(t *testing.T) {
	app := fiber.New()
	app.Get("/page", func(c *fiber.Ctx) error {
		page, limit := ParsePagination(c, 10, 100)
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})

	cases := []struct {
		url   string
		page  int
		limit int
	}{
		{"/page", 1, 10},
		{"/page?page=3&limit=25", 3, 25},
		{"/page?page=-1&limit=0", 1, 10},
		{"/page?limit=9999", 1, 100},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil), -1)
		require.NoError(t, err)

		var payload map[string]int
		body, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, tc.page, payload["page"], tc.url)
		assert.Equal(t, tc.limit, payload["limit"], tc.url)
	}
}

func TestPaginationMeta(t *testing.T) {
	meta := PaginationMeta(2, 10, 35)
	assert.Equal(t, 2, meta["page"])
	assert.Equal(t, int64(35), meta["total"])
	assert.Equal(t, 4, meta["total_pages"])
}
