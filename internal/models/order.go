package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses as reported by the gateway.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Order is the immutable record of a completed purchase intent. Once its
// items are attached only the status and payment fields may change.
type Order struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Number string `json:"number" gorm:"uniqueIndex;type:varchar(20)"`
	UserID string `json:"user_id" gorm:"index;type:varchar(36)"`
	User   *User  `json:"user,omitempty"`
	// AddressID is nullable: the address may be deleted after the order.
	AddressID *string  `json:"address_id,omitempty" gorm:"type:varchar(36)"`
	Address   *Address `json:"address,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	Total         decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(50);default:MercadoPago"`
	// PaymentReference is the gateway transaction id, used as the
	// idempotency key for order creation. Nullable so orders without a
	// gateway payment never collide on the unique index.
	PaymentReference *string `json:"payment_reference,omitempty" gorm:"uniqueIndex;type:varchar(100)"`
	PaymentStatus    string  `json:"payment_status" gorm:"type:varchar(20);default:pending"`

	Status    string      `json:"status" gorm:"type:varchar(20);default:pending"`
	Notes     string      `json:"notes"`
	Items     []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	Summary   *OrderSummary `json:"summary,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ValidOrderStatus reports whether s is a known lifecycle status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem captures one product line at purchase time. Subtotal is
// quantity times unit price, computed at creation and never recomputed
// from the current product price.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  uint            `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderSummary is the receipt-like record derived from an order. It is
// created in the same transaction as the order and updated when the order's
// items change or when the summary is emailed.
type OrderSummary struct {
	ID       string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID  string          `json:"order_id" gorm:"uniqueIndex;type:varchar(36)"`
	Number   string          `json:"number" gorm:"uniqueIndex;type:varchar(20)"`
	IssuedAt time.Time       `json:"issued_at"`
	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`

	// PDFContent holds the rendered document bytes once a renderer has
	// produced them; nil means not yet generated.
	PDFContent  []byte `json:"-"`
	PDFFilename string `json:"pdf_filename,omitempty" gorm:"type:varchar(120)"`

	SentByEmail bool       `json:"sent_by_email" gorm:"default:false"`
	EmailSentAt *time.Time `json:"email_sent_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasPDF reports whether a rendered document is stored on the summary.
func (s *OrderSummary) HasPDF() bool {
	return len(s.PDFContent) > 0
}
