package middleware

import (
	"github.com/craftlink/craftlink-backend/internal/dto"
	"github.com/craftlink/craftlink-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// RequireRole rejects requests whose JWT does not carry the given role.
// It must run after JWTProtected.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if actor.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "This action requires the " + role + " role",
			})
		}
		return c.Next()
	}
}
