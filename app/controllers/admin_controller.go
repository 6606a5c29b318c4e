package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/CartFox/internal/pkg/database"
	"github.com/ManuelReschke/CartFox/internal/pkg/orders"
	"github.com/ManuelReschke/CartFox/internal/pkg/payment"
	"github.com/ManuelReschke/CartFox/internal/pkg/statistics"
)

// HandleAdminListOrders returns orders across all users.
func HandleAdminListOrders(c *fiber.Ctx) error {
	offset, limit := parsePaging(c)

	svc := orders.NewServiceFromDB(database.GetDB())
	result, total, err := svc.List(c.UserContext(), offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"orders": result, "total": total, "offset": offset, "limit": limit})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid failed cancelled shipped delivered"`
}

// HandleAdminUpdateOrderStatus applies a guarded status transition, used for
// fulfillment (shipped, delivered) and manual corrections.
func HandleAdminUpdateOrderStatus(c *fiber.Ctx) error {
	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
	}

	svc := orders.NewServiceFromDB(database.GetDB())
	order, err := svc.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order status updated", "order": order})
}

// HandleAdminListPayments returns payments across all users.
func HandleAdminListPayments(c *fiber.Ctx) error {
	offset, limit := parsePaging(c)

	svc := payment.NewServiceFromDB(database.GetDB())
	payments, total, err := svc.List(c.UserContext(), offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"payments": payments, "total": total, "offset": offset, "limit": limit})
}

// HandleAdminGetPayment returns a single payment by id.
func HandleAdminGetPayment(c *fiber.Ctx) error {
	svc := payment.NewServiceFromDB(database.GetDB())
	p, err := svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"payment": p})
}

type refundRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// HandleAdminRefundPayment refunds a successful payment, fully or partially.
func HandleAdminRefundPayment(c *fiber.Ctx) error {
	var req refundRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Malformed request body"})
		}
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	p, err := svc.Refund(c.UserContext(), c.Params("id"), req.Amount)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payment refunded successfully", "payment": p})
}

// HandleAdminStats returns cached order, user and revenue aggregates.
func HandleAdminStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stats": statistics.GetStatisticsData()})
}

// HandleAdminListWebhookLogs returns the audit trail of raw inbound
// notifications, newest first.
func HandleAdminListWebhookLogs(c *fiber.Ctx) error {
	offset, limit := parsePaging(c)

	svc := payment.NewServiceFromDB(database.GetDB())
	logs, total, err := svc.WebhookLogs(c.UserContext(), offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"webhook_logs": logs, "total": total, "offset": offset, "limit": limit})
}
