package repositories

import (
	"fmt"
	"strings"

	"muebleria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// toSearchTerm normalizes a user-supplied search query for a LIKE match.
func toSearchTerm(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves active products, optionally filtered by category slug,
// active sale, or a name search.
func (r *GORMProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Preload("Category").Where("active = ?", true)

	if filter.OnSale {
		query = query.Where("sale_active = ?", true)
	} else if filter.CategorySlug != "" {
		var category models.Category
		if err := r.db.First(&category, "slug = ?", filter.CategorySlug).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("category with slug %s not found", filter.CategorySlug)
			}
			return nil, fmt.Errorf("failed to look up category %s: %w", filter.CategorySlug, err)
		}
		query = query.Where("category_id = ?", category.ID)
	}
	if filter.Query != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+toSearchTerm(filter.Query)+"%")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetTopSellers retrieves the active products with the highest cumulative
// sales, newest first on ties.
func (r *GORMProductRepository) GetTopSellers(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("active = ?", true).
		Order("sales DESC, created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top sellers: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	return nil
}

// GetCategories retrieves all categories.
func (r *GORMProductRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}
