package repositories

import "muebleria/internal/models"

// CartRepository defines the interface for cart data access. Carts are
// created lazily on first use and survive checkout (only their items are
// cleared).
type CartRepository interface {
	GetOrCreate(userID string) (*models.Cart, error)
	GetByID(cartID string) (*models.Cart, error)
	Items(cartID string) ([]models.CartItem, error)
	GetItem(cartID, productID string) (*models.CartItem, error)
	SaveItem(item *models.CartItem) error
	DeleteItem(cartID, productID string) error
	Clear(cartID string) error
	TotalItems(cartID string) (uint, error)
}
