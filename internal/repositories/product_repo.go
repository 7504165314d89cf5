package repositories

import "muebleria/internal/models"

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategorySlug string // filter by category slug
	OnSale       bool   // only products with an active sale
	Query        string // case-insensitive name search
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetTopSellers(limit int) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	GetCategories() ([]models.Category, error)
}
