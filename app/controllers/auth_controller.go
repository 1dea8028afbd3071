package controllers

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LarsBecker/StoryPress/app/models"
	"github.com/LarsBecker/StoryPress/app/repository"
	"github.com/LarsBecker/StoryPress/internal/pkg/token"
	"github.com/LarsBecker/StoryPress/internal/pkg/usercontext"
)

var (
	tokenManager     *token.Manager
	tokenManagerOnce sync.Once
)

// TokenManager returns the process-wide JWT manager used by the auth
// endpoints and by the bearer middleware.
func TokenManager() *token.Manager {
	tokenManagerOnce.Do(func() {
		tokenManager = token.NewManagerFromEnv()
	})
	return tokenManager
}

type registerRequest struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// HandleRegister creates a new reader account. No author profile is
// created here; that happens through the authors endpoints.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	if req.Password != req.ConfirmPassword {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"password": "Passwords do not match"})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	taken, err := userRepo.EmailExists(req.Email)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating account", fiber.Map{"detail": err.Error()})
	}
	if taken {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"email": "Email is already registered"})
	}

	user, err := models.CreateUser(req.FullName, req.Email, req.Password)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", ValidationErrorMap(err))
	}

	if err := userRepo.Create(user); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error creating account", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"user": userPayload(user, false),
	}, "Registration successful")
}

// authenticate resolves the login credentials to an active user.
func authenticate(email, password string) (*models.User, string) {
	userRepo := repository.GetGlobalFactory().GetUserRepository()

	user, err := userRepo.GetByEmail(email)
	if err != nil {
		return nil, "Invalid email or password"
	}
	if !user.CheckPassword(password) {
		return nil, "Invalid email or password"
	}
	if !user.IsActive {
		return nil, "Account is inactive"
	}

	return user, ""
}

// HandleLogin issues an access/refresh token pair for valid credentials.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials", fiber.Map{"detail": "invalid request body"})
	}

	user, failure := authenticate(req.Email, req.Password)
	if failure != "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials", fiber.Map{"detail": failure})
	}

	return loginResponse(c, user, "Login successful")
}

// HandleAdminLogin is login plus an admin-flag check.
func HandleAdminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials", fiber.Map{"detail": "invalid request body"})
	}

	user, failure := authenticate(req.Email, req.Password)
	if failure != "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials", fiber.Map{"detail": failure})
	}
	if !user.IsAdmin {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials", fiber.Map{"detail": "Not an admin account"})
	}

	return loginResponse(c, user, "Admin login successful")
}

func loginResponse(c *fiber.Ctx, user *models.User, message string) error {
	pair, err := TokenManager().IssuePair(user.ID, user.Email, user.IsAdmin, user.IsAuthor)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error issuing tokens", fiber.Map{"detail": err.Error()})
	}

	hasProfile, _ := repository.GetGlobalFactory().GetAuthorRepository().ExistsForUser(user.ID)

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"user": userPayload(user, hasProfile),
		"tokens": fiber.Map{
			"access":  pair.Access,
			"refresh": pair.Refresh,
		},
	}, message)
}

// HandleTokenRefresh redeems a refresh token for a fresh pair.
func HandleTokenRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"refresh": "This field is required"})
	}

	claims, err := TokenManager().ParseRefresh(req.Refresh)
	if err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}

	// Re-read the account so revoked or demoted users drop out on refresh.
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(claims.UserID)
	if err != nil || !user.IsActive {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}

	pair, err := TokenManager().IssuePair(user.ID, user.Email, user.IsAdmin, user.IsAuthor)
	if err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error issuing tokens", fiber.Map{"detail": err.Error()})
	}

	return SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	}, "Token refreshed")
}

// HandleGetProfile returns the authenticated user's profile.
func HandleGetProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching profile", fiber.Map{"detail": err.Error()})
	}

	hasProfile, _ := repository.GetGlobalFactory().GetAuthorRepository().ExistsForUser(user.ID)

	return SuccessResponse(c, fiber.StatusOK, userPayload(user, hasProfile), "Profile fetched successfully")
}

// HandleUpdateProfile allows a user to change their fullname. Email, role
// flags and join date stay read-only here.
func HandleUpdateProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req struct {
		FullName *string `json:"fullname"`
	}
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", fiber.Map{"detail": "invalid request body"})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
		}
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating profile", fiber.Map{"detail": err.Error()})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
		if err := user.Validate(); err != nil {
			return ErrorResponse(c, fiber.StatusBadRequest, "Validation error", ValidationErrorMap(err))
		}
	}

	if err := userRepo.Update(user); err != nil {
		return ErrorResponse(c, fiber.StatusInternalServerError, "Error updating profile", fiber.Map{"detail": err.Error()})
	}

	hasProfile, _ := repository.GetGlobalFactory().GetAuthorRepository().ExistsForUser(user.ID)

	return SuccessResponse(c, fiber.StatusOK, userPayload(user, hasProfile), "Profile updated successfully")
}
