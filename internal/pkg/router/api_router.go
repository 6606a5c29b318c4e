package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/CartFox/app/controllers"
	"github.com/ManuelReschke/CartFox/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")

	orders := v1.Group("/orders", middleware.RequireAuth())
	orders.Post("/", controllers.HandleCreateOrder)
	orders.Get("/", controllers.HandleListMyOrders)
	orders.Get("/:id", controllers.HandleGetOrder)
	orders.Post("/:id/cancel", controllers.HandleCancelOrder)

	payments := v1.Group("/payments", middleware.RequireAuth())
	payments.Post("/", controllers.HandleInitiatePayment)
	payments.Get("/history", controllers.HandlePaymentHistory)
	payments.Get("/verify/:reference", controllers.HandleVerifyPayment)
	payments.Get("/:reference/link", controllers.HandleGetCheckoutLink)

	admin := v1.Group("/admin", middleware.RequireAdmin())
	admin.Get("/orders", controllers.HandleAdminListOrders)
	admin.Patch("/orders/:id/status", controllers.HandleAdminUpdateOrderStatus)
	admin.Get("/payments", controllers.HandleAdminListPayments)
	admin.Get("/payments/:id", controllers.HandleAdminGetPayment)
	admin.Post("/payments/:id/refund", controllers.HandleAdminRefundPayment)
	admin.Get("/webhook-logs", controllers.HandleAdminListWebhookLogs)
	admin.Get("/stats", controllers.HandleAdminStats)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
