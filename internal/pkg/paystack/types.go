package paystack

import "encoding/json"

// Webhook event types delivered by Paystack that the settlement processor
// understands. Anything else is logged and ignored.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// WebhookEvent is the parsed form of an inbound notification. Only the fields
// settlement needs are decoded; the raw payload is preserved in the audit log.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Currency  string `json:"currency"`
}

// ParseWebhookEvent decodes a raw webhook body defensively. Unknown event
// types are returned as-is so callers can decide to ignore them.
func ParseWebhookEvent(raw []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// IsKnown reports whether the event type participates in settlement.
func (e *WebhookEvent) IsKnown() bool {
	return e.Event == EventChargeSuccess || e.Event == EventChargeFailed
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeRequest is the payload for opening a checkout session.
type InitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"` // minor units (kobo)
	Reference   string            `json:"reference"`
	Currency    string            `json:"currency,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// InitializeData is the checkout handle returned by the gateway.
type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyData is the gateway's view of a transaction, fetched synchronously.
type VerifyData struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"` // minor units (kobo)
	Currency  string `json:"currency"`
}

type refundRequest struct {
	Transaction string `json:"transaction"`
	Amount      int64  `json:"amount,omitempty"`
}

// RefundData is the confirmation returned for a refund request.
type RefundData struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}
