package orders

import (
	"context"
	"errors"

	"github.com/ManuelReschke/CartFox/app/models"
	"github.com/ManuelReschke/CartFox/app/repository"
	"gorm.io/gorm"
)

// LineItemInput is a requested (product, quantity) pair. The caller passes
// already-validated quantities; prices are never accepted from the client.
type LineItemInput struct {
	ProductID uint
	Quantity  int
}

// Service creates and reads orders. Creation performs the inventory
// reservation and the ledger write as one atomic operation; everything after
// creation only ever touches the status column.
type Service struct {
	repo      Repository
	addresses repository.AddressRepository
	products  repository.ProductRepository
}

// NewService creates an order service from injected repositories.
func NewService(repo Repository, addresses repository.AddressRepository, products repository.ProductRepository) *Service {
	return &Service{repo: repo, addresses: addresses, products: products}
}

// NewServiceFromDB creates an order service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), repository.NewAddressRepository(db), repository.NewProductRepository(db))
}

// Create validates the shipping address and the requested products, then
// reserves stock and persists the order with snapshotted line items. On any
// failure nothing is written: no partial order, no partial stock decrement.
func (s *Service) Create(ctx context.Context, userID, addressID uint, items []LineItemInput) (*models.Order, error) {
	_ = ctx
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}

	address, err := s.addresses.GetByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrForbidden
	}
	if address.Kind != models.AddressKindShipping {
		return nil, ErrNotShippingAddress
	}

	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrNoLineItems
		}
		if _, ok := seen[item.ProductID]; ok {
			return nil, ErrProductsInvalid
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetActiveByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, ErrProductsInvalid
	}

	order := &models.Order{
		UserID:            userID,
		ShippingAddressID: addressID,
		Status:            models.OrderStatusPending,
		Items:             make([]models.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		productID := item.ProductID
		order.Items = append(order.Items, models.OrderItem{
			ProductID: &productID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.repo.CreateWithReservation(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID resolves an order or reports ErrOrderNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Order, error) {
	_ = ctx
	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetOwnedByID resolves an order and verifies it belongs to the caller.
func (s *Service) GetOwnedByID(ctx context.Context, id string, userID uint) (*models.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListByUser returns the caller's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	_ = ctx
	return s.repo.ListByUser(userID, offset, limit)
}

// List returns orders across all users with a total count (admin read).
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.Order, int64, error) {
	_ = ctx
	return s.repo.List(offset, limit)
}

// Cancel moves a pending order to cancelled. Any other starting state is
// rejected; cancellation is the only transition a user can drive directly.
// The ownership check runs on an unlocked read, the transition itself is
// decided by the repository against the locked row, so a settlement landing
// between the two loses nothing.
func (s *Service) Cancel(ctx context.Context, id string, userID uint) (*models.Order, error) {
	order, err := s.GetOwnedByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !models.OrderCanTransition(order.Status, models.OrderStatusCancelled) {
		return nil, ErrInvalidTransition
	}
	updated, err := s.repo.UpdateStatus(order.ID, models.OrderStatusCancelled)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UpdateStatus applies a status-only transition guarded by the order state
// machine. Fulfillment (shipped, delivered) goes through here. The repository
// re-checks the transition under a row lock, the early check only serves the
// common case a cheaper error.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.OrderCanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}
	updated, err := s.repo.UpdateStatus(order.ID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}
