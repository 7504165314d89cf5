package repositories

import (
	"fmt"
	"muebleria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{
		db: db,
	}
}

// GetByProduct retrieves the inventory record for a product, nil if the
// product has no inventory row yet.
func (r *GORMInventoryRepository) GetByProduct(productID string) (*models.Inventory, error) {
	var inventory models.Inventory
	err := r.db.First(&inventory, "product_id = ?", productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory for product %s: %w", productID, err)
	}
	return &inventory, nil
}

// Save inserts or updates an inventory record.
func (r *GORMInventoryRepository) Save(inventory *models.Inventory) error {
	if inventory.ID == "" {
		inventory.ID = uuid.New().String()
	}
	if err := r.db.Save(inventory).Error; err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}
