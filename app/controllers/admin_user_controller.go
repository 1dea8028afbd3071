package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

// HandleAdminListUsers returns all accounts, filtered by search text, role
// and status, plus the role/status counts the admin panel shows.
func HandleAdminListUsers(c *fiber.Ctx) error {
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	filter := repository.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role", "all"),
		Status: c.Query("status", "all"),
	}
	if filter.Role == "all" {
		filter.Role = ""
	}
	if filter.Status == "all" {
		filter.Status = ""
	}

	users, err := userRepo.List(filter)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving users", fiber.Map{"detail": err.Error()})
	}

	stats, err := userRepo.GetStats()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving users", fiber.Map{"detail": err.Error()})
	}

	payload := make([]fiber.Map, 0, len(users))
	for i := range users {
		payload = append(payload, adminUserPayload(&users[i]))
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"users": payload,
		"count": len(payload),
		"stats": stats,
	}, "Users retrieved successfully")
}

// HandleAdminUpdateUser edits name/email and maps the role/status strings
// onto the stored flags.
func HandleAdminUpdateUser(c *fiber.Ctx) error {
	userID, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id", nil)
	}

	var req struct {
		FullName *string `json:"fullname"`
		Email    *string `json:"email"`
		Role     *string `json:"role"`
		Status   *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating user", fiber.Map{"detail": err.Error()})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.ApplyRole(*req.Role)
	}
	if req.Status != nil {
		user.IsActive = *req.Status == "active"
	}

	if err := user.Validate(); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", ValidationErrorMap(err))
	}

	if err := userRepo.Update(user); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating user", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, adminUserPayload(user), "User updated successfully")
}

// HandleAdminDeleteUser hard-deletes an account. Admins cannot delete
// themselves.
func HandleAdminDeleteUser(c *fiber.Ctx) error {
	userID, err := ParseIDParam(c, "id")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id", nil)
	}

	userCtx := usercontext.GetUserContext(c)
	if userID == userCtx.UserID {
		return ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete your own account", nil)
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting user", fiber.Map{"detail": err.Error()})
	}

	if err := userRepo.Delete(userID); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error deleting user", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, nil, "User deleted successfully")
}

// HandleAdminDashboard returns the account totals plus registrations from
// the last 7 days.
func HandleAdminDashboard(c *fiber.Ctx) error {
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	stats, err := userRepo.GetStats()
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving dashboard stats", fiber.Map{"detail": err.Error()})
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	recent, err := userRepo.CountJoinedSince(weekAgo)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error retrieving dashboard stats", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"total_users":  stats.Total,
		"active_users": stats.Active,
		"admin_users":  stats.Admins,
		"author_users": stats.Authors,
		"reader_users": stats.Readers,
		"recent_users": recent,
	}, "Dashboard stats retrieved successfully")
}
