package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CartFox/internal/pkg/orders"
	"github.com/ManuelReschke/CartFox/internal/pkg/payment"
)

var validate = validator.New()

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePaging reads offset/limit query parameters with sane bounds.
func parsePaging(c *fiber.Ctx) (offset, limit int) {
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return offset, limit
}

// respondError translates service errors into the JSON error envelope used
// across the API. Unrecognized errors become a logged 500.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *orders.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "insufficient_stock", "message": stockErr.Error(), "product_id": stockErr.ProductID})
	}

	switch {
	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, orders.ErrAddressNotFound),
		errors.Is(err, payment.ErrOrderNotFound),
		errors.Is(err, payment.ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, orders.ErrForbidden), errors.Is(err, payment.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": err.Error()})
	case errors.Is(err, orders.ErrNotShippingAddress),
		errors.Is(err, orders.ErrProductsInvalid),
		errors.Is(err, orders.ErrNoLineItems),
		errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, payment.ErrOrderNotPending),
		errors.Is(err, payment.ErrNotRefundable),
		errors.Is(err, payment.ErrRefundAmount),
		errors.Is(err, payment.ErrNotVerified),
		errors.Is(err, payment.ErrInvalidPayload),
		errors.Is(err, payment.ErrAmountMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
	case errors.Is(err, payment.ErrAlreadyProcessed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already_processed", "message": err.Error()})
	case errors.Is(err, payment.ErrInvalidSignature):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature", "message": err.Error()})
	case errors.Is(err, payment.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream_error", "message": err.Error()})
	}

	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Something went wrong"})
}
