package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products for navigation and filtering.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(50)" validate:"required,min=2,max=50"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(60)" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product represents a product in the store.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string           `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(10,2)"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty" gorm:"type:decimal(10,2)"`
	SaleActive  bool             `json:"sale_active" gorm:"default:false"`
	Active      bool             `json:"active" gorm:"default:true"`
	MainImage   string           `json:"main_image" gorm:"type:varchar(255)"`
	CategoryID  *string          `json:"category_id,omitempty" gorm:"type:varchar(36)"`
	Category    *Category        `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	// Sales is the cumulative number of units sold. Only the checkout
	// pipeline increments it.
	Sales     uint      `json:"sales" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentPrice returns the sale price when the sale is active and a sale
// price is set, otherwise the base price.
func (p *Product) CurrentPrice() decimal.Decimal {
	if p.SaleActive && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Inventory keeps per-product stock counters. Stock never goes below zero;
// only the checkout pipeline decrements it.
type Inventory struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID    string    `json:"product_id" gorm:"uniqueIndex;type:varchar(36)"`
	Product      *Product  `json:"product,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Stock        uint      `json:"stock" gorm:"default:0"`
	StockMinimum uint      `json:"stock_minimum" gorm:"default:0"`
	StockMaximum uint      `json:"stock_maximum" gorm:"default:100"`
	UpdatedAt    time.Time `json:"updated_at"`
}
