package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable per-user collection of items. It is created lazily on
// first use and cleared (not deleted) after a successful order.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product line in a cart. The unit price is captured when
// the product is added so later price changes do not affect the cart.
type CartItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string          `json:"cart_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_product"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_product"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  uint            `json:"quantity" gorm:"default:1" validate:"gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Subtotal is quantity times the captured unit price.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Wishlist holds the products a user has marked as favorites.
type Wishlist struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string         `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []WishlistItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
}

// WishlistItem is a single product entry in a wishlist.
type WishlistItem struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	WishlistID string    `json:"wishlist_id" gorm:"type:varchar(36);uniqueIndex:idx_wishlist_product"`
	ProductID  string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_wishlist_product"`
	Product    *Product  `json:"product,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
