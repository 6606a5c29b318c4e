package repository

import (
	"github.com/ManuelReschke/CartFox/app/models"
)

// UserRepository defines the narrow lookup contract the order core has with
// the account subsystem.
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// AddressRepository defines the lookup contract for shipping addresses.
type AddressRepository interface {
	GetByID(id uint) (*models.Address, error)
	GetByUserID(userID uint) ([]models.Address, error)
}

// ProductRepository defines the read-side contract with the catalog. The order
// core never mutates products outside the reservation transaction.
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetActiveByIDs(ids []uint) ([]models.Product, error)
}
