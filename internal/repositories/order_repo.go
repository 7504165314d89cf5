package repositories

import "muebleria/internal/models"

// OrderRepository defines the interface for order data access. Order
// creation itself happens inside the checkout pipeline's transaction, so
// this interface only covers the read and status-update paths.
type OrderRepository interface {
	GetAllByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByIDForUser(id, userID string) (*models.Order, error)
	FindByPaymentReference(ref string) (*models.Order, error)
	UpdateStatus(id string, status string) error
	GetSummary(orderID string) (*models.OrderSummary, error)
	SaveSummary(summary *models.OrderSummary) error
}
