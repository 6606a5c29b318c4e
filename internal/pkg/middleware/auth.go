package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CartFox/internal/pkg/usercontext"
)

// RequireAuth rejects requests without a resolved, active user.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !usercontext.IsLoggedIn(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := usercontext.GetUserContext(c)
		if !ctx.IsLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
		}
		if !ctx.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Admin access required"})
		}
		return c.Next()
	}
}
