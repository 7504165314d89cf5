package services

import (
	"muebleria/internal/models"
	"muebleria/internal/repositories"
)

// Stock level labels reported by Status. Reporting only, not enforcement.
const (
	StockStatusLow     = "low"
	StockStatusOptimal = "optimal"
	StockStatusHigh    = "high"
)

// InventoryService exposes the stock ledger: availability reads, clamped
// reservations and threshold reporting.
type InventoryService struct {
	repo repositories.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// Available returns the current stock for a product, zero when no
// inventory record exists.
func (s *InventoryService) Available(productID string) (uint, error) {
	inventory, err := s.repo.GetByProduct(productID)
	if err != nil {
		return 0, err
	}
	if inventory == nil {
		return 0, nil
	}
	return inventory.Stock, nil
}

// Reserve decrements stock by qty, clamped at zero. It never fails on
// under-stock: quantity validation happens earlier, in the checkout
// pipeline. A product without an inventory record is a no-op.
func (s *InventoryService) Reserve(productID string, qty uint) error {
	inventory, err := s.repo.GetByProduct(productID)
	if err != nil {
		return err
	}
	if inventory == nil {
		return nil
	}
	if qty >= inventory.Stock {
		inventory.Stock = 0
	} else {
		inventory.Stock -= qty
	}
	return s.repo.Save(inventory)
}

// Status labels a product's stock level against its thresholds: "low" at
// or below the minimum, "high" at or above the maximum, else "optimal".
func (s *InventoryService) Status(productID string) (string, error) {
	inventory, err := s.repo.GetByProduct(productID)
	if err != nil {
		return "", err
	}
	if inventory == nil || inventory.Stock <= inventory.StockMinimum {
		return StockStatusLow, nil
	}
	if inventory.Stock >= inventory.StockMaximum {
		return StockStatusHigh, nil
	}
	return StockStatusOptimal, nil
}

// SetStock creates or updates a product's inventory record.
func (s *InventoryService) SetStock(productID string, stock, minimum, maximum uint) (*models.Inventory, error) {
	inventory, err := s.repo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if inventory == nil {
		inventory = &models.Inventory{ProductID: productID}
	}
	inventory.Stock = stock
	inventory.StockMinimum = minimum
	inventory.StockMaximum = maximum
	if err := s.repo.Save(inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}
