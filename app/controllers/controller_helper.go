package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope so clients can branch on
// "success" without inspecting the HTTP status first.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

// SuccessResponse writes the envelope for a successful request.
func SuccessResponse(c *fiber.Ctx, status int, data interface{}, message string) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(status).JSON(envelope{
		Success: true,
		Data:    data,
		Message: message,
		Errors:  fiber.Map{},
	})
}

// ErrorResponse writes the envelope for a failed request. errs may be nil.
func ErrorResponse(c *fiber.Ctx, status int, message string, errs interface{}) error {
	if errs == nil {
		errs = fiber.Map{}
	}
	return c.Status(status).JSON(envelope{
		Success: false,
		Data:    fiber.Map{},
		Message: message,
		Errors:  errs,
	})
}

// ValidationErrorMap flattens validator errors into a field→message map for
// the envelope's errors object.
func ValidationErrorMap(err error) fiber.Map {
	out := fiber.Map{}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		out["detail"] = err.Error()
		return out
	}

	for _, fe := range vErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Enter a valid email address"
		case "min":
			out[field] = "Value is too short"
		case "max":
			out[field] = "Value is too long"
		default:
			out[field] = "Invalid value"
		}
	}

	return out
}

// ParseIDParam reads a positive integer route parameter.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ParsePagination reads page/limit query parameters with sane bounds.
func ParsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// PaginationMeta is the page bookkeeping block list endpoints return
// alongside their results.
func PaginationMeta(page, limit int, total int64) fiber.Map {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
	}
}
