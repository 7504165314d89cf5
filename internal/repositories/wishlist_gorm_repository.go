package repositories

import (
	"fmt"
	"muebleria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetOrCreate(userID string) (*models.Wishlist, error)
	Items(wishlistID string) ([]models.WishlistItem, error)
	Contains(wishlistID, productID string) (bool, error)
	AddItem(wishlistID, productID string) error
	RemoveItem(wishlistID, productID string) error
}

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// GetOrCreate returns the user's wishlist, creating it on first use.
func (r *GORMWishlistRepository) GetOrCreate(userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.First(&wishlist, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		wishlist = models.Wishlist{ID: uuid.New().String(), UserID: userID}
		if err := r.db.Create(&wishlist).Error; err != nil {
			return nil, fmt.Errorf("failed to create wishlist for user %s: %w", userID, err)
		}
		return &wishlist, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}
	return &wishlist, nil
}

// Items retrieves the wishlist entries with their products.
func (r *GORMWishlistRepository) Items(wishlistID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Preload("Product").
		Where("wishlist_id = ?", wishlistID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist items: %w", err)
	}
	return items, nil
}

// Contains reports whether the product is already on the wishlist.
func (r *GORMWishlistRepository) Contains(wishlistID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist membership: %w", err)
	}
	return count > 0, nil
}

// AddItem puts a product on the wishlist.
func (r *GORMWishlistRepository) AddItem(wishlistID, productID string) error {
	item := models.WishlistItem{
		ID:         uuid.New().String(),
		WishlistID: wishlistID,
		ProductID:  productID,
	}
	if err := r.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// RemoveItem takes a product off the wishlist.
func (r *GORMWishlistRepository) RemoveItem(wishlistID, productID string) error {
	err := r.db.Delete(&models.WishlistItem{}, "wishlist_id = ? AND product_id = ?", wishlistID, productID).Error
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}
