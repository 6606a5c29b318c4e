package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/ManuelReschke/CartFox/app/models"
	"github.com/ManuelReschke/CartFox/app/repository"
	"github.com/ManuelReschke/CartFox/internal/pkg/env"
	"github.com/ManuelReschke/CartFox/internal/pkg/paystack"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gateway is the slice of the Paystack client the payment service uses.
type Gateway interface {
	InitializeTransaction(ctx context.Context, in paystack.InitializeRequest) (*paystack.InitializeData, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyData, error)
	RefundTransaction(ctx context.Context, transactionID string, amount int64) (*paystack.RefundData, error)
}

// InitiationResult is returned to the client to complete checkout.
type InitiationResult struct {
	PaymentID   string `json:"payment_id"`
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

// SettlementResult describes what a webhook or verify call did.
type SettlementResult struct {
	Reference string `json:"reference"`
	PaymentID string `json:"payment_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Ignored   bool   `json:"ignored,omitempty"`
}

// Service initiates payments and settles their outcome. All settlement paths
// funnel through the repository's locked check-then-set, which makes duplicate
// and out-of-order provider notifications safe to replay.
type Service struct {
	repo          Repository
	users         repository.UserRepository
	gateway       Gateway
	links         LinkStore
	webhookSecret string
}

// NewService creates a payment service from injected collaborators. links may
// be nil when no cache is available.
func NewService(repo Repository, users repository.UserRepository, gateway Gateway, links LinkStore, webhookSecret string) *Service {
	return &Service{repo: repo, users: users, gateway: gateway, links: links, webhookSecret: webhookSecret}
}

// NewServiceFromDB wires the service with the env-configured gateway client
// and the shared cache.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(
		NewRepository(db),
		repository.NewUserRepository(db),
		paystack.NewClientFromEnv(),
		NewLinkStore(),
		env.GetEnv("PAYSTACK_SECRET_KEY", ""),
	)
}

// Initiate opens a payment attempt for a pending order. The pending payment
// row is persisted before the gateway call so a crash mid-initiation still
// leaves an auditable record; a gateway failure surfaces as ErrUpstream and
// the payment stays pending for a later retry or webhook.
func (s *Service) Initiate(ctx context.Context, orderID string, userID uint) (*InitiationResult, error) {
	order, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("PS-%d-%s", time.Now().UnixMilli(), order.ID)
	p := &models.Payment{
		UserID:    userID,
		OrderID:   order.ID,
		Status:    models.PaymentStatusPending,
		Provider:  models.PaymentProviderPaystack,
		Reference: reference,
		Amount:    order.TotalAmount,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}

	data, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:     user.Email,
		Amount:    toMinorUnits(order.TotalAmount),
		Reference: reference,
		Metadata: map[string]string{
			"order_id": order.ID,
			"user_id":  strconv.FormatUint(uint64(userID), 10),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if s.links != nil {
		if err := s.links.Set(checkoutLinkKey(reference), data.AuthorizationURL, checkoutLinkTTL); err != nil {
			log.Printf("checkout link cache write failed for %s: %v", reference, err)
		}
	}

	return &InitiationResult{
		PaymentID:   p.ID,
		Reference:   reference,
		CheckoutURL: data.AuthorizationURL,
	}, nil
}

// CheckoutLink returns the cached checkout URL for a pending payment, if any.
func (s *Service) CheckoutLink(ctx context.Context, reference string) (string, error) {
	_ = ctx
	if s.links == nil {
		return "", nil
	}
	link, err := s.links.Get(checkoutLinkKey(reference))
	if err != nil {
		return "", nil
	}
	return link, nil
}

// HandleWebhook processes an asynchronous provider notification. The
// signature is checked before anything else; an unauthenticated payload is
// rejected without any write, not even an audit entry. Once authenticated the
// raw payload is appended to the audit log regardless of what happens next.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader string) (*SettlementResult, error) {
	if !paystack.VerifyWebhookSignature(rawBody, signatureHeader, s.webhookSecret) {
		return nil, ErrInvalidSignature
	}

	if err := s.repo.AppendWebhookLog(&models.WebhookLog{
		Provider: models.PaymentProviderPaystack,
		Payload:  string(rawBody),
	}); err != nil {
		return nil, err
	}

	event, err := paystack.ParseWebhookEvent(rawBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch event.Event {
	case paystack.EventChargeSuccess:
		return s.applySuccess(ctx, event.Data.Reference, strconv.FormatInt(event.Data.ID, 10), event.Data.Amount)
	case paystack.EventChargeFailed:
		return s.applyFailure(ctx, event.Data.Reference)
	default:
		log.Printf("ignoring paystack event %q", event.Event)
		return &SettlementResult{Reference: event.Data.Reference, Ignored: true}, nil
	}
}

// Verify asks the gateway for the transaction state and, on a success
// response, settles the payment exactly like a success notification would.
func (s *Service) Verify(ctx context.Context, reference string) (*SettlementResult, error) {
	data, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if data.Status != "success" {
		return nil, ErrNotVerified
	}
	return s.applySuccess(ctx, reference, strconv.FormatInt(data.ID, 10), data.Amount)
}

// applySuccess normalizes the reported minor-unit amount and drives the
// idempotent success transition on payment + order.
func (s *Service) applySuccess(ctx context.Context, reference, transactionID string, amountMinor int64) (*SettlementResult, error) {
	_ = ctx
	settled, err := s.repo.SettleSuccess(reference, transactionID, fromMinorUnits(amountMinor))
	if err != nil {
		return nil, err
	}

	if s.links != nil {
		_ = s.links.Delete(checkoutLinkKey(reference))
	}

	return &SettlementResult{
		Reference: reference,
		PaymentID: settled.ID,
		OrderID:   settled.OrderID,
		Status:    settled.Status,
	}, nil
}

// applyFailure drives the failure transition. Success is sticky: a failure
// event landing after a success is acknowledged but changes nothing.
func (s *Service) applyFailure(ctx context.Context, reference string) (*SettlementResult, error) {
	_ = ctx
	settled, applied, err := s.repo.SettleFailure(reference)
	if err != nil {
		return nil, err
	}
	if !applied {
		log.Printf("ignoring failure event for settled payment %s", reference)
	}
	return &SettlementResult{
		Reference: reference,
		PaymentID: settled.ID,
		OrderID:   settled.OrderID,
		Status:    settled.Status,
		Ignored:   !applied,
	}, nil
}

// Refund refunds a successful payment, fully or partially, via the gateway
// and marks it refunded. Order status and inventory are deliberately left
// untouched; reconciling those is a separate, explicit operation.
func (s *Service) Refund(ctx context.Context, paymentID string, amount *decimal.Decimal) (*models.Payment, error) {
	p, err := s.repo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if p.Status != models.PaymentStatusSuccess {
		return nil, ErrNotRefundable
	}

	refundAmount := p.Amount
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(p.Amount) {
			return nil, ErrRefundAmount
		}
		refundAmount = *amount
	}

	if _, err := s.gateway.RefundTransaction(ctx, p.TransactionID, toMinorUnits(refundAmount)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.repo.MarkRefunded(p.ID); err != nil {
		return nil, err
	}
	p.Status = models.PaymentStatusRefunded
	return p, nil
}

// GetByID resolves a payment or reports ErrPaymentNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	_ = ctx
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// HistoryForUser returns the caller's payment attempts, newest first.
func (s *Service) HistoryForUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	_ = ctx
	return s.repo.ListByUser(userID)
}

// List returns payments across all users with a total count (admin read).
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.Payment, int64, error) {
	_ = ctx
	return s.repo.List(offset, limit)
}

// WebhookLogs returns the audit trail of inbound notifications (admin read).
func (s *Service) WebhookLogs(ctx context.Context, offset, limit int) ([]models.WebhookLog, int64, error) {
	_ = ctx
	return s.repo.ListWebhookLogs(offset, limit)
}
