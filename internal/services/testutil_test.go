package services_test

import (
	"fmt"
	"testing"

	"muebleria/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory SQLite database and migrates the
// full schema. TranslateError maps SQLite's unique violations onto
// gorm.ErrDuplicatedKey, same as the postgres driver in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Inventory{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderSummary{},
		&models.BlogPost{},
		&models.BlogComment{},
		&models.BlogLike{},
		&models.Subscriber{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// createTestUser inserts a user with an optional primary address.
func createTestUser(t *testing.T, db *gorm.DB, withAddress bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  "user-" + uuid.New().String()[:8],
		Email:     uuid.New().String()[:8] + "@example.com",
		Password:  "hashed",
		FirstName: "Ana",
		LastName:  "Torres",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if withAddress {
		address := &models.Address{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			Name:       "Casa",
			Street:     "Av. Reforma",
			City:       "Guadalajara",
			State:      "Jalisco",
			PostalCode: "44100",
			Primary:    true,
		}
		if err := db.Create(address).Error; err != nil {
			t.Fatalf("failed to create test address: %v", err)
		}
	}
	return user
}

// createTestProduct inserts a product with an inventory record holding the
// given stock.
func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock uint) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:     uuid.New().String(),
		Name:   name,
		Price:  decimal.NewFromFloat(price),
		Active: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	inventory := &models.Inventory{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Stock:        stock,
		StockMinimum: 2,
		StockMaximum: 50,
	}
	if err := db.Create(inventory).Error; err != nil {
		t.Fatalf("failed to create test inventory: %v", err)
	}
	return product
}

// addToCart puts qty units of a product into the user's cart at the
// product's current price.
func addToCart(t *testing.T, db *gorm.DB, cart *models.Cart, product *models.Product, qty uint) {
	t.Helper()
	item := &models.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  qty,
		UnitPrice: product.CurrentPrice(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to add item to cart: %v", err)
	}
}

// createTestCart inserts an empty cart for the user.
func createTestCart(t *testing.T, db *gorm.DB, userID string) *models.Cart {
	t.Helper()
	cart := &models.Cart{ID: uuid.New().String(), UserID: userID}
	if err := db.Create(cart).Error; err != nil {
		t.Fatalf("failed to create test cart: %v", err)
	}
	return cart
}

// currentStock reads a product's stock straight from the database.
func currentStock(t *testing.T, db *gorm.DB, productID string) uint {
	t.Helper()
	var inventory models.Inventory
	if err := db.First(&inventory, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("failed to read inventory for %s: %v", productID, err)
	}
	return inventory.Stock
}
