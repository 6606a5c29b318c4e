package models

import "time"

const (
	AddressKindShipping = "shipping"
	AddressKindBilling  = "billing"
)

// Address belongs to the account subsystem. Orders only reference a shipping
// address by id; the kind check happens during order creation.
type Address struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Kind       string    `gorm:"type:varchar(20);not null;default:'shipping'" json:"kind" validate:"oneof=shipping billing"`
	Street     string    `gorm:"type:varchar(255)" json:"street" validate:"required,max=255"`
	City       string    `gorm:"type:varchar(100)" json:"city" validate:"required,max=100"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code" validate:"max=20"`
	Country    string    `gorm:"type:varchar(100)" json:"country" validate:"required,max=100"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
