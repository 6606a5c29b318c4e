package orders

import (
	"errors"

	"github.com/ManuelReschke/CartFox/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the order service.
type Repository interface {
	CreateWithReservation(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByUser(userID uint, offset, limit int) ([]models.Order, error)
	List(offset, limit int) ([]models.Order, int64, error)
	UpdateStatus(id, status string) (*models.Order, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates an order repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// CreateWithReservation reserves stock and persists the order in one
// transaction. Each line item must carry ProductID and Quantity; the product
// row is re-read under a write lock so concurrent checkouts for the same
// product serialize here, the stock is decremented, and the snapshot fields
// and totals are filled from the locked row. Any failure rolls back every
// stock write and the order insert together.
func (r *gormRepository) CreateWithReservation(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		total, err := reserveItems(order.Items,
			func(id uint) (*models.Product, error) {
				var product models.Product
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&product, id).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrProductsInvalid
					}
					return nil, err
				}
				return &product, nil
			},
			func(productID uint, remaining int) error {
				return tx.Model(&models.Product{}).Where("id = ?", productID).
					Update("stock_quantity", remaining).Error
			})
		if err != nil {
			return err
		}

		order.Status = models.OrderStatusPending
		order.TotalAmount = total
		return tx.Create(order).Error
	})
}

// reserveItems walks the line items in order, resolving each product through
// lookup, reserving against it and reporting the decrement through commit.
// It returns the order total. The first failure aborts the walk; the caller's
// transaction is responsible for discarding any commits made before it.
func reserveItems(items []models.OrderItem, lookup func(uint) (*models.Product, error), commit func(productID uint, remaining int) error) (decimal.Decimal, error) {
	total := decimal.Zero

	for i := range items {
		item := &items[i]
		if item.ProductID == nil {
			return decimal.Zero, ErrProductsInvalid
		}

		product, err := lookup(*item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}

		remaining, err := reserveItem(item, product)
		if err != nil {
			return decimal.Zero, err
		}
		if err := commit(*item.ProductID, remaining); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(item.TotalPrice)
	}

	return total, nil
}

// reserveItem checks the requested quantity against the locked product row and
// fills the line item snapshot from it. The returned value is the stock count
// left after the reservation.
func reserveItem(item *models.OrderItem, product *models.Product) (int, error) {
	remaining := product.StockQuantity - item.Quantity
	if remaining < 0 {
		return 0, &InsufficientStockError{ProductID: product.ID, ProductName: product.Name}
	}

	item.ProductName = product.Name
	item.ProductImageURL = product.ImageURL
	item.UnitPrice = product.Price
	item.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return remaining, nil
}

// GetByID retrieves an order with its line items.
func (r *gormRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *gormRepository) ListByUser(userID uint, offset, limit int) ([]models.Order, error) {
	var results []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&results).Error
	return results, err
}

// List retrieves orders across all users with a total count.
func (r *gormRepository) List(offset, limit int) ([]models.Order, int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var results []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&results).Error
	return results, count, err
}

// UpdateStatus transitions the order to status and returns the updated row.
// The current status is re-read under a write lock inside the transaction so
// a settlement committing concurrently cannot be overwritten; a transition the
// state machine forbids returns ErrInvalidTransition. Only the status column
// changes, the rest of the order row is immutable after creation.
func (r *gormRepository) UpdateStatus(id, status string) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		if !models.OrderCanTransition(order.Status, status) {
			return ErrInvalidTransition
		}
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
