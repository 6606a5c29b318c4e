package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const PaymentProviderPaystack = "paystack"

// Payment records a single payment attempt against an order. The provider
// reference is the durable idempotency key for settlement: it is unique per
// attempt and every webhook or verify call resolves the payment through it.
// Status moves from pending to exactly one terminal outcome; success may later
// become refunded through the explicit refund operation.
type Payment struct {
	ID            string          `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	OrderID       string          `gorm:"type:char(36);not null;index" json:"order_id"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Provider      string          `gorm:"type:varchar(50);not null" json:"provider"`
	Reference     string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"reference"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	TransactionID string          `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsTerminal reports whether the payment already reached a final outcome.
func (p *Payment) IsTerminal() bool {
	return p.Status != PaymentStatusPending
}
