package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem carries a frozen snapshot of the product (name, image, unit price)
// taken during reservation. The snapshot never changes, even when the live
// product is edited or deleted later; ProductID is therefore nullable.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         string          `gorm:"type:char(36);not null;index" json:"order_id"`
	ProductID       *uint           `gorm:"index" json:"product_id,omitempty"`
	ProductName     string          `gorm:"type:varchar(200);not null" json:"product_name"`
	ProductImageURL string          `gorm:"type:varchar(255)" json:"product_image_url"`
	Quantity        int             `gorm:"not null" json:"quantity" validate:"required,min=1"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
