package handlers

import (
	"context"
	"errors"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/alanluk2226/Workoutapp/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service authApplicationService
}

type authApplicationService interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*services.AuthResult, error)
	Logout(ctx context.Context, claims *utils.Claims) error
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Username may also carry the email address.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	result, err := h.service.Register(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "User created successfully!",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	result, err := h.service.Login(c.UserContext(), identifier, req.Password)
	if err != nil {
		return mapAuthError(c, err)
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Login successful!",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*utils.Claims)
	if err := h.service.Logout(c.UserContext(), claims); err != nil {
		return mapAuthError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	user, err := h.service.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return mapAuthError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"user": user})
}

func mapAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	case errors.Is(err, services.ErrDuplicateAccount):
		return respondError(c, fiber.StatusConflict, "User with this email or username already exists")
	case errors.Is(err, services.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, "User not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Authentication request failed")
	}
}
