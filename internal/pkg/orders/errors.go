package orders

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrForbidden          = errors.New("access denied")
	ErrNotShippingAddress = errors.New("address is not a shipping address")
	ErrProductsInvalid    = errors.New("some products are invalid or inactive")
	ErrNoLineItems        = errors.New("order needs at least one line item")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
)

// InsufficientStockError names the product that could not be reserved. The
// whole reservation rolls back when it is returned.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

// IsInsufficientStock reports whether err is a reservation stock failure.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
