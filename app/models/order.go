package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// orderTransitions lists the allowed status transitions. pending is the only
// state settlement or cancellation can leave; paid moves forward through
// fulfillment only. delivered, failed and cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped},
	OrderStatusShipped: {OrderStatusDelivered},
}

// OrderCanTransition reports whether an order status change is allowed.
func OrderCanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is created once with its line items and is immutable afterwards except
// for the status column. TotalAmount is derived from the line item totals at
// creation time and never recomputed.
type Order struct {
	ID                string          `gorm:"type:char(36);primaryKey" json:"id"`
	UserID            uint            `gorm:"not null;index" json:"user_id"`
	ShippingAddressID uint            `gorm:"not null" json:"shipping_address_id"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt         time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
