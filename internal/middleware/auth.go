package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a bearer token to the caller it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Caller, *utils.Claims, error)
}

func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid authorization header format",
			})
		}

		caller, claims, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or expired token",
			})
		}

		c.Locals("user_id", strconv.FormatInt(caller.UserID, 10))
		c.Locals("role", caller.Role)
		c.Locals("caller", *caller)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Forbidden",
			})
		}
		return c.Next()
	}
}
