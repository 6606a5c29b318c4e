package repository

import (
	"github.com/ManuelReschke/CartFox/app/models"
	"gorm.io/gorm"
)

// addressRepository implements the AddressRepository interface
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository instance
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

// GetByID retrieves an address by its ID
func (r *addressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	err := r.db.First(&address, id).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// GetByUserID retrieves all addresses belonging to a user
func (r *addressRepository) GetByUserID(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}
