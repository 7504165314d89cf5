package repositories

import "muebleria/internal/models"

// InventoryRepository defines the interface for stock data access.
type InventoryRepository interface {
	GetByProduct(productID string) (*models.Inventory, error)
	Save(inventory *models.Inventory) error
}
