package services_test

import (
	"testing"

	"muebleria/internal/repositories"
	"muebleria/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryService_Available(t *testing.T) {
	db := setupTestDB(t)
	inventory := services.NewInventoryService(repositories.NewGORMInventoryRepository(db))

	product := createTestProduct(t, db, "Mesa auxiliar", 45.00, 7)

	stock, err := inventory.Available(product.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), stock)

	// A product without an inventory record reads as zero.
	stock, err = inventory.Available("no-such-product")
	require.NoError(t, err)
	assert.Equal(t, uint(0), stock)
}

func TestInventoryService_ReserveClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	inventory := services.NewInventoryService(repositories.NewGORMInventoryRepository(db))

	product := createTestProduct(t, db, "Repisa flotante", 20.00, 3)

	require.NoError(t, inventory.Reserve(product.ID, 2))
	assert.Equal(t, uint(1), currentStock(t, db, product.ID))

	// Reserving more than what remains floors at zero instead of wrapping.
	require.NoError(t, inventory.Reserve(product.ID, 5))
	assert.Equal(t, uint(0), currentStock(t, db, product.ID))

	// No inventory record is a no-op, not an error.
	require.NoError(t, inventory.Reserve("no-such-product", 1))
}

func TestInventoryService_Status(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMInventoryRepository(db)
	inventory := services.NewInventoryService(repo)

	product := createTestProduct(t, db, "Vitrina de cristal", 310.00, 10)

	// Fixture thresholds: minimum 2, maximum 50.
	status, err := inventory.Status(product.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StockStatusOptimal, status)

	_, err = inventory.SetStock(product.ID, 2, 2, 50)
	require.NoError(t, err)
	status, err = inventory.Status(product.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StockStatusLow, status)

	_, err = inventory.SetStock(product.ID, 50, 2, 50)
	require.NoError(t, err)
	status, err = inventory.Status(product.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StockStatusHigh, status)

	// No record reads as low.
	status, err = inventory.Status("no-such-product")
	require.NoError(t, err)
	assert.Equal(t, services.StockStatusLow, status)
}

func TestInventoryService_SetStockCreatesRecord(t *testing.T) {
	db := setupTestDB(t)
	inventory := services.NewInventoryService(repositories.NewGORMInventoryRepository(db))

	record, err := inventory.SetStock("brand-new-product", 15, 3, 40)
	require.NoError(t, err)
	assert.Equal(t, uint(15), record.Stock)
	assert.Equal(t, uint(3), record.StockMinimum)
	assert.Equal(t, uint(40), record.StockMaximum)
	assert.NotEmpty(t, record.ID)
}
