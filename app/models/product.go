package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is owned and mutated by the catalog subsystem. The order core reads
// it exactly once per checkout: a batch active-only lookup, then a locked
// re-read of the stock count inside the reservation transaction.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	ImageURL      string          `gorm:"type:varchar(255)" json:"image_url" validate:"max=255"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	SoldCount     int             `gorm:"not null;default:0" json:"sold_count"`
	IsActive      bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
