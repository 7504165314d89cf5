package repositories

import "muebleria/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

// AddressRepository defines the interface for address-book access. Resolve
// only returns an address when it belongs to the given user.
type AddressRepository interface {
	ListByUser(userID string) ([]models.Address, error)
	Resolve(userID, addressID string) (*models.Address, error)
	FirstForUser(userID string) (*models.Address, error)
	Create(address *models.Address) error
	Delete(userID, addressID string) error
}
