package middleware

import (
	"strings"

	"go-almacen-pos/internal/service"
	"go-almacen-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT and re-checks the account against the current
// state, so a deleted operator loses access immediately.
func RequireAuth(pos *service.PosService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, ok := pos.UserByID(claims.UserID)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", string(user.Role))

		return c.Next()
	}
}

// RequireRole gates admin-only routes on the flat operator role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals("user_role").(string)
		if !ok || current != role {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + role + "' role",
			})
		}
		return c.Next()
	}
}
