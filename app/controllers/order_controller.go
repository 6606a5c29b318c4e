package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CartFox/internal/pkg/database"
	"github.com/ManuelReschke/CartFox/internal/pkg/mail"
	"github.com/ManuelReschke/CartFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/CartFox/internal/pkg/orders"
	"github.com/ManuelReschke/CartFox/internal/pkg/usercontext"
)

type createOrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	AddressID uint                     `json:"address_id" validate:"required"`
	Items     []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder places an order: shipping address check, batch product
// check, then the atomic reservation + ledger write.
func HandleCreateOrder(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
	}

	items := make([]orders.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.LineItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	svc := orders.NewServiceFromDB(database.GetDB())
	order, err := svc.Create(c.UserContext(), userCtx.UserID, req.AddressID, items)
	if err != nil {
		return respondError(c, err)
	}

	for _, item := range order.Items {
		if item.ProductID != nil {
			if err := counter.AddProductSold(*item.ProductID, item.Quantity); err != nil {
				log.Printf("sold counter increment failed for product %d: %v", *item.ProductID, err)
			}
		}
	}

	if userCtx.Email != "" {
		go func(to string) {
			_ = mail.SendOrderConfirmation(to, order)
		}(userCtx.Email)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Order created successfully", "order": order})
}

// HandleGetOrder returns one of the caller's orders with its line items.
func HandleGetOrder(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	svc := orders.NewServiceFromDB(database.GetDB())
	order, err := svc.GetOwnedByID(c.UserContext(), c.Params("id"), userCtx.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"order": order})
}

// HandleListMyOrders returns the caller's orders, newest first.
func HandleListMyOrders(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := parsePaging(c)

	svc := orders.NewServiceFromDB(database.GetDB())
	result, err := svc.ListByUser(c.UserContext(), userCtx.UserID, offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"orders": result})
}

// HandleCancelOrder cancels a pending order owned by the caller.
func HandleCancelOrder(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	svc := orders.NewServiceFromDB(database.GetDB())
	order, err := svc.Cancel(c.UserContext(), c.Params("id"), userCtx.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order cancelled", "order": order})
}
