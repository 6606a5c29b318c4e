package repository

import (
	"github.com/ManuelReschke/CartFox/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetByID retrieves a product by its ID
func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetActiveByIDs retrieves all active products matching the given IDs in one
// batch. Callers compare the result size against the request to detect
// inactive or deleted products.
func (r *productRepository) GetActiveByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error
	return products, err
}
