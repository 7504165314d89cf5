package repositories

import (
	"fmt"
	"muebleria/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAllByUser retrieves the user's orders, newest first.
func (r *GORMOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Summary").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items, summary, user and address.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").Preload("Summary").
		Preload("User.Profile").Preload("Address").
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByIDForUser retrieves an order only when it belongs to the user.
func (r *GORMOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return order, nil
}

// FindByPaymentReference returns the order created for a gateway payment,
// nil if no order carries that reference yet.
func (r *GORMOrderRepository) FindByPaymentReference(ref string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Summary").
		First(&order, "payment_reference = ?", ref).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by payment reference: %w", err)
	}
	return &order, nil
}

// UpdateStatus updates the lifecycle status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	return nil
}

// GetSummary retrieves the summary attached to an order.
func (r *GORMOrderRepository) GetSummary(orderID string) (*models.OrderSummary, error) {
	var summary models.OrderSummary
	err := r.db.First(&summary, "order_id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("summary for order %s not found", orderID)
		}
		return nil, fmt.Errorf("failed to get summary for order %s: %w", orderID, err)
	}
	return &summary, nil
}

// SaveSummary persists summary mutations (totals, PDF bytes, email flags).
func (r *GORMOrderRepository) SaveSummary(summary *models.OrderSummary) error {
	if err := r.db.Save(summary).Error; err != nil {
		return fmt.Errorf("failed to save summary %s: %w", summary.Number, err)
	}
	return nil
}
