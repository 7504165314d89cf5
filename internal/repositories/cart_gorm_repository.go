package repositories

import (
	"fmt"
	"muebleria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetOrCreate returns the user's cart, creating it on first use.
func (r *GORMCartRepository) GetOrCreate(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.First(&cart, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{ID: uuid.New().String(), UserID: userID}
		if err := r.db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// GetByID retrieves a cart by its ID. The gateway's external_reference
// carries a cart ID, so callbacks look carts up this way.
func (r *GORMCartRepository) GetByID(cartID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "id = ?", cartID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart with ID %s not found", cartID)
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", cartID, err)
	}
	return &cart, nil
}

// Items retrieves the cart's items with their products, oldest first.
func (r *GORMCartRepository) Items(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get items for cart %s: %w", cartID, err)
	}
	return items, nil
}

// GetItem retrieves a single cart line, nil if the product is not in the cart.
func (r *GORMCartRepository) GetItem(cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return &item, nil
}

// SaveItem inserts or updates a cart line.
func (r *GORMCartRepository) SaveItem(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// DeleteItem removes a product line from the cart.
func (r *GORMCartRepository) DeleteItem(cartID, productID string) error {
	res := r.db.Delete(&models.CartItem{}, "cart_id = ? AND product_id = ?", cartID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s is not in cart %s", productID, cartID)
	}
	return nil
}

// Clear removes every item from the cart; the cart row itself persists.
func (r *GORMCartRepository) Clear(cartID string) error {
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}

// TotalItems sums the quantities across the cart's lines.
func (r *GORMCartRepository) TotalItems(cartID string) (uint, error) {
	var total *int64
	err := r.db.Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count items for cart %s: %w", cartID, err)
	}
	if total == nil {
		return 0, nil
	}
	return uint(*total), nil
}
