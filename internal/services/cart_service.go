package services

import (
	"fmt"

	"muebleria/internal/models"
	"muebleria/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartService handles the mutable per-user cart: adding, decreasing and
// removing lines with captured unit prices.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	inventory   *InventoryService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, inventory *InventoryService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		inventory:   inventory,
	}
}

// GetCart returns the user's cart with its items and running total.
func (s *CartService) GetCart(userID string) (*models.Cart, decimal.Decimal, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	items, err := s.cartRepo.Items(cart.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	cart.Items = items

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return cart, total, nil
}

// AddProduct adds qty units of a product to the user's cart, capturing the
// product's current price on first add. The requested quantity must not
// exceed the available stock. Returns the cart's new item count.
func (s *CartService) AddProduct(userID, productID string, qty uint) (uint, error) {
	if qty < 1 {
		return 0, fmt.Errorf("invalid quantity: %d", qty)
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}

	stock, err := s.inventory.Available(productID)
	if err != nil {
		return 0, err
	}
	if qty > stock {
		return 0, &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   stock,
			Requested:   qty,
		}
	}

	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		item = &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: product.CurrentPrice(),
		}
	} else {
		item.Quantity += qty
	}
	if err := s.cartRepo.SaveItem(item); err != nil {
		return 0, err
	}
	return s.cartRepo.TotalItems(cart.ID)
}

// DecreaseProduct lowers a cart line's quantity by one, removing the line
// when it reaches zero. Returns the new item count and whether the line
// was removed.
func (s *CartService) DecreaseProduct(userID, productID string) (uint, bool, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return 0, false, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return 0, false, err
	}
	if item == nil {
		return 0, false, fmt.Errorf("product %s is not in the cart", productID)
	}

	removed := false
	if item.Quantity > 1 {
		item.Quantity--
		if err := s.cartRepo.SaveItem(item); err != nil {
			return 0, false, err
		}
	} else {
		if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
			return 0, false, err
		}
		removed = true
	}

	count, err := s.cartRepo.TotalItems(cart.ID)
	return count, removed, err
}

// RemoveProduct deletes a product line from the cart entirely.
func (s *CartService) RemoveProduct(userID, productID string) (uint, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}
	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return 0, err
	}
	return s.cartRepo.TotalItems(cart.ID)
}

// ClearCart removes every line from the user's cart.
func (s *CartService) ClearCart(userID string) error {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.Clear(cart.ID)
}
