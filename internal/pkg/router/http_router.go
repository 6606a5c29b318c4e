package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CartFox/app/controllers"
	"github.com/ManuelReschke/CartFox/internal/pkg/middleware"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Provider webhooks live outside the authenticated API surface; the
	// payload is authenticated by its signature, not by a user.
	app.Post("/webhook/paystack", controllers.HandlePaystackWebhook)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
