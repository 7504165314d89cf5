package services_test

import (
	"testing"

	"muebleria/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_Subscribe(t *testing.T) {
	db := setupTestDB(t)
	subscriptions := services.NewSubscriptionService(db)

	subscriber, err := subscriptions.Subscribe("cliente@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, subscriber.ID)
	assert.Equal(t, "cliente@example.com", subscriber.Email)

	// The same email cannot subscribe twice.
	_, err = subscriptions.Subscribe("cliente@example.com")
	assert.ErrorIs(t, err, services.ErrAlreadySubscribed)
}
