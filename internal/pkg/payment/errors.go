package payment

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrForbidden        = errors.New("access denied")
	ErrOrderNotPending  = errors.New("order already paid or cancelled")
	ErrAlreadyProcessed = errors.New("payment already processed")
	ErrAmountMismatch   = errors.New("paid amount does not match recorded amount")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("webhook payload could not be parsed")
	ErrNotVerified      = errors.New("payment not verified by gateway")
	ErrNotRefundable    = errors.New("only successful payments can be refunded")
	ErrRefundAmount     = errors.New("refund amount exceeds paid amount")
	ErrUpstream         = errors.New("payment gateway error")
)
