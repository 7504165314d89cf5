package services

import (
	"errors"
	"fmt"

	"muebleria/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService manages the newsletter subscriber list.
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{
		db: db,
	}
}

// Subscribe adds an email to the list. An already-subscribed email
// returns ErrAlreadySubscribed.
func (s *SubscriptionService) Subscribe(email string) (*models.Subscriber, error) {
	subscriber := &models.Subscriber{
		ID:    uuid.New().String(),
		Email: email,
	}
	if err := s.db.Create(subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}
	return subscriber, nil
}
