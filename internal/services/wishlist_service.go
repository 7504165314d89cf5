package services

import (
	"muebleria/internal/models"
	"muebleria/internal/repositories"
)

// WishlistService toggles and lists a user's favorite products.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Toggle adds the product to the user's wishlist if absent, removes it if
// present. Returns whether the product ended up on the list.
func (s *WishlistService) Toggle(userID, productID string) (bool, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return false, err
	}
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	present, err := s.wishlistRepo.Contains(wishlist.ID, productID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.wishlistRepo.RemoveItem(wishlist.ID, productID)
	}
	return true, s.wishlistRepo.AddItem(wishlist.ID, productID)
}

// List returns the user's wishlist with its items.
func (s *WishlistService) List(userID string) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.wishlistRepo.Items(wishlist.ID)
	if err != nil {
		return nil, err
	}
	wishlist.Items = items
	return wishlist, nil
}
