package services

import (
	"muebleria/internal/models"
	"muebleria/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	inventory *InventoryService
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, inventory *InventoryService) *ProductService {
	return &ProductService{
		repo:      repo,
		inventory: inventory,
	}
}

// GetAllProducts retrieves active products matching the filter.
func (s *ProductService) GetAllProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// GetTopSellers retrieves the best-selling active products.
func (s *ProductService) GetTopSellers(limit int) ([]models.Product, error) {
	return s.repo.GetTopSellers(limit)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductStock returns the available stock and threshold status for a
// product.
func (s *ProductService) GetProductStock(id string) (uint, string, error) {
	stock, err := s.inventory.Available(id)
	if err != nil {
		return 0, "", err
	}
	status, err := s.inventory.Status(id)
	if err != nil {
		return 0, "", err
	}
	return stock, status, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// GetCategories retrieves all categories.
func (s *ProductService) GetCategories() ([]models.Category, error) {
	return s.repo.GetCategories()
}
