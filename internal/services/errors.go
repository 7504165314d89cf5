package services

import (
	"errors"
	"fmt"
)

// Validation failures reported to the caller before any mutation.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMissingAddress    = errors.New("no shipping address resolved")
	ErrAlreadySubscribed = errors.New("email is already subscribed")
)

// InsufficientStockError reports the first cart line whose quantity exceeds
// the available stock. No mutation has happened when it is returned.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   uint
	Requested   uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}
