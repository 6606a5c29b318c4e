package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/CartFox/app/models"
)

type fakeOrderRepo struct {
	orders        map[string]*models.Order
	created       []*models.Order
	reservationFn func(order *models.Order) error
	statusWrites  []string

	// beforeStatusWrite runs between the service's read and the repo's
	// guarded write, standing in for a concurrent transaction.
	beforeStatusWrite func()
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (r *fakeOrderRepo) CreateWithReservation(order *models.Order) error {
	if r.reservationFn != nil {
		if err := r.reservationFn(order); err != nil {
			return err
		}
	}
	if order.ID == "" {
		order.ID = "order-1"
	}
	r.created = append(r.created, order)
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) ListByUser(userID uint, offset, limit int) ([]models.Order, error) {
	var result []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) List(offset, limit int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, int64(len(result)), nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) (*models.Order, error) {
	if r.beforeStatusWrite != nil {
		r.beforeStatusWrite()
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !models.OrderCanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}
	order.Status = status
	r.statusWrites = append(r.statusWrites, id+":"+status)
	return order, nil
}

type fakeAddressRepo struct {
	addresses map[uint]*models.Address
}

func (r *fakeAddressRepo) GetByID(id uint) (*models.Address, error) {
	address, ok := r.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return address, nil
}

func (r *fakeAddressRepo) GetByUserID(userID uint) ([]models.Address, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[uint]*models.Product
}

func (r *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) GetActiveByIDs(ids []uint) ([]models.Product, error) {
	var result []models.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.IsActive {
			result = append(result, *product)
		}
	}
	return result, nil
}

func newOrderServiceFixture() (*Service, *fakeOrderRepo) {
	repo := newFakeOrderRepo()
	addresses := &fakeAddressRepo{addresses: map[uint]*models.Address{
		10: {ID: 10, UserID: 1, Kind: models.AddressKindShipping},
		11: {ID: 11, UserID: 1, Kind: models.AddressKindBilling},
		12: {ID: 12, UserID: 2, Kind: models.AddressKindShipping},
	}}
	products := &fakeProductRepo{products: map[uint]*models.Product{
		100: {ID: 100, Name: "Keyboard", Price: decimal.RequireFromString("5000.00"), StockQuantity: 5, IsActive: true},
		101: {ID: 101, Name: "Mouse Pad", Price: decimal.RequireFromString("3000.00"), StockQuantity: 1, IsActive: true},
		102: {ID: 102, Name: "Discontinued", Price: decimal.RequireFromString("900.00"), StockQuantity: 4, IsActive: false},
	}}
	return NewService(repo, addresses, products), repo
}

func TestCreateOrder(t *testing.T) {
	svc, repo := newOrderServiceFixture()

	order, err := svc.Create(context.Background(), 1, 10, []LineItemInput{
		{ProductID: 100, Quantity: 2},
		{ProductID: 101, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, uint(1), order.UserID)
	assert.Equal(t, uint(10), order.ShippingAddressID)
	require.Len(t, order.Items, 2)
	require.NotNil(t, order.Items[0].ProductID)
	assert.Equal(t, uint(100), *order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestCreateOrder_Guards(t *testing.T) {
	tests := []struct {
		name      string
		userID    uint
		addressID uint
		items     []LineItemInput
		wantErr   error
	}{
		{name: "no line items", userID: 1, addressID: 10, items: nil, wantErr: ErrNoLineItems},
		{name: "zero quantity", userID: 1, addressID: 10, items: []LineItemInput{{ProductID: 100, Quantity: 0}}, wantErr: ErrNoLineItems},
		{name: "unknown address", userID: 1, addressID: 99, items: []LineItemInput{{ProductID: 100, Quantity: 1}}, wantErr: ErrAddressNotFound},
		{name: "foreign address", userID: 1, addressID: 12, items: []LineItemInput{{ProductID: 100, Quantity: 1}}, wantErr: ErrForbidden},
		{name: "billing address", userID: 1, addressID: 11, items: []LineItemInput{{ProductID: 100, Quantity: 1}}, wantErr: ErrNotShippingAddress},
		{name: "duplicate product", userID: 1, addressID: 10, items: []LineItemInput{{ProductID: 100, Quantity: 1}, {ProductID: 100, Quantity: 2}}, wantErr: ErrProductsInvalid},
		{name: "unknown product", userID: 1, addressID: 10, items: []LineItemInput{{ProductID: 999, Quantity: 1}}, wantErr: ErrProductsInvalid},
		{name: "inactive product", userID: 1, addressID: 10, items: []LineItemInput{{ProductID: 102, Quantity: 1}}, wantErr: ErrProductsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newOrderServiceFixture()
			_, err := svc.Create(context.Background(), tt.userID, tt.addressID, tt.items)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created, "nothing may be written when validation fails")
		})
	}
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	svc, repo := newOrderServiceFixture()
	repo.reservationFn = func(order *models.Order) error {
		return &InsufficientStockError{ProductID: 101, ProductName: "Mouse Pad"}
	}

	_, err := svc.Create(context.Background(), 1, 10, []LineItemInput{
		{ProductID: 100, Quantity: 1},
		{ProductID: 101, Quantity: 2},
	})
	require.Error(t, err)
	assert.True(t, IsInsufficientStock(err))
	assert.Empty(t, repo.created, "reservation failure must not leave an order behind")
}

func TestGetOwnedByID(t *testing.T) {
	svc, repo := newOrderServiceFixture()
	repo.orders["order-1"] = &models.Order{ID: "order-1", UserID: 1, Status: models.OrderStatusPending}

	order, err := svc.GetOwnedByID(context.Background(), "order-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)

	_, err = svc.GetOwnedByID(context.Background(), "order-1", 2)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetOwnedByID(context.Background(), "missing", 1)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelOrder(t *testing.T) {
	svc, repo := newOrderServiceFixture()
	repo.orders["order-1"] = &models.Order{ID: "order-1", UserID: 1, Status: models.OrderStatusPending}

	order, err := svc.Cancel(context.Background(), "order-1", 1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestCancelOrder_OnlyFromPending(t *testing.T) {
	for _, status := range []string{
		models.OrderStatusPaid,
		models.OrderStatusFailed,
		models.OrderStatusCancelled,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		svc, repo := newOrderServiceFixture()
		repo.orders["order-1"] = &models.Order{ID: "order-1", UserID: 1, Status: status}

		_, err := svc.Cancel(context.Background(), "order-1", 1)
		require.ErrorIs(t, err, ErrInvalidTransition, "cancel from %s", status)
		assert.Empty(t, repo.statusWrites)
	}
}

func TestCancelOrder_LosesRaceAgainstSettlement(t *testing.T) {
	svc, repo := newOrderServiceFixture()
	repo.orders["order-1"] = &models.Order{ID: "order-1", UserID: 1, Status: models.OrderStatusPending}
	repo.beforeStatusWrite = func() {
		// settlement commits paid after the cancel pre-check read the order
		repo.orders["order-1"].Status = models.OrderStatusPaid
	}

	_, err := svc.Cancel(context.Background(), "order-1", 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.OrderStatusPaid, repo.orders["order-1"].Status, "a settled order must stay paid")
	assert.Empty(t, repo.statusWrites)
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newOrderServiceFixture()
	repo.orders["order-1"] = &models.Order{ID: "order-1", UserID: 1, Status: models.OrderStatusPaid}

	order, err := svc.UpdateStatus(context.Background(), "order-1", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	order, err = svc.UpdateStatus(context.Background(), "order-1", models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)

	_, err = svc.UpdateStatus(context.Background(), "order-1", models.OrderStatusPending)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_RepoErrorPassthrough(t *testing.T) {
	svc, repo := newOrderServiceFixture()
	repo.orders["order-1"] = &models.Order{ID: "order-1", UserID: 1, Status: models.OrderStatusPending}
	delete(repo.orders, "order-1")

	_, err := svc.UpdateStatus(context.Background(), "order-1", models.OrderStatusPaid)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidTransition))
}
