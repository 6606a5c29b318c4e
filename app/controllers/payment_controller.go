package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CartFox/internal/pkg/database"
	"github.com/ManuelReschke/CartFox/internal/pkg/payment"
	"github.com/ManuelReschke/CartFox/internal/pkg/usercontext"
)

type initiatePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid4"`
}

// HandleInitiatePayment opens a checkout session for a pending order and
// returns the redirect handle plus the payment reference.
func HandleInitiatePayment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req initiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Malformed request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	result, err := svc.Initiate(c.UserContext(), req.OrderID, userCtx.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleVerifyPayment triggers synchronous verification against the gateway.
// A success response settles the payment exactly like a success webhook.
func HandleVerifyPayment(c *fiber.Ctx) error {
	svc := payment.NewServiceFromDB(database.GetDB())
	result, err := svc.Verify(c.UserContext(), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Payment successfully verified", "result": result})
}

// HandleGetCheckoutLink returns the cached checkout URL for a reference, so a
// client can resume an interrupted checkout without a new gateway session.
func HandleGetCheckoutLink(c *fiber.Ctx) error {
	svc := payment.NewServiceFromDB(database.GetDB())
	link, err := svc.CheckoutLink(c.UserContext(), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	if link == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "No cached checkout link"})
	}
	return c.JSON(fiber.Map{"checkout_url": link})
}

// HandlePaymentHistory returns the caller's payment attempts.
func HandlePaymentHistory(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	svc := payment.NewServiceFromDB(database.GetDB())
	history, err := svc.HistoryForUser(c.UserContext(), userCtx.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"payments": history})
}

// HandlePaystackWebhook consumes asynchronous provider notifications. The
// provider retries on non-2xx, so every authenticated outcome that must not
// be redelivered (applied, duplicate, ignored) acknowledges with 200.
func HandlePaystackWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("x-paystack-signature")

	svc := payment.NewServiceFromDB(database.GetDB())
	result, err := svc.HandleWebhook(c.UserContext(), rawBody, signature)
	if err != nil {
		if errors.Is(err, payment.ErrAlreadyProcessed) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "result": result})
}
