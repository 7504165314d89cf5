package services

import (
	"fmt"
	"strings"
	"testing"

	"muebleria/internal/models"
	"muebleria/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openNumbersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderSummary{},
	))
	return db
}

// stubNumbers makes the next count generated numbers collide with taken,
// then restores the real generator's output.
func stubNumbers(t *testing.T, taken string, count int) {
	t.Helper()
	orig := generateNumber
	calls := 0
	generateNumber = func(prefix string) string {
		calls++
		if calls <= count {
			return taken
		}
		return orig(prefix)
	}
	t.Cleanup(func() { generateNumber = orig })
}

func seedNumberedOrder(t *testing.T, db *gorm.DB, userID, number string) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            uuid.New().String(),
		Number:        number,
		UserID:        userID,
		Total:         decimal.NewFromInt(100),
		PaymentMethod: "Pago de prueba",
		PaymentStatus: models.PaymentStatusApproved,
		Status:        models.OrderStatusProcessing,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedNumbersUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New().String(),
		Username: "user-" + uuid.New().String()[:8],
		Email:    uuid.New().String()[:8] + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// A generated order number colliding with an existing one must not poison
// the enclosing transaction: the failed insert rolls back to a savepoint
// and the next attempt, plus everything after it, still executes.
func TestInsertOrder_RetriesPastNumberCollision(t *testing.T) {
	db := openNumbersTestDB(t)
	user := seedNumbersUser(t, db)
	seedNumberedOrder(t, db, user.ID, "PED-C0111DE0")
	stubNumbers(t, "PED-C0111DE0", 1)

	svc := &CheckoutService{orderRepo: repositories.NewGORMOrderRepository(db)}
	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		Total:         decimal.NewFromInt(250),
		PaymentMethod: "Pago de prueba",
		PaymentStatus: models.PaymentStatusApproved,
		Status:        models.OrderStatusProcessing,
	}

	var countInTx int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := svc.insertOrder(tx, order, ""); err != nil {
			return err
		}
		// A statement after the retry proves the transaction is still live.
		return tx.Model(&models.Order{}).Count(&countInTx).Error
	})
	require.NoError(t, err)
	assert.NotEqual(t, "PED-C0111DE0", order.Number)
	assert.True(t, strings.HasPrefix(order.Number, "PED-"))
	assert.EqualValues(t, 2, countInTx)
}

func TestInsertOrder_GivesUpAfterMaxAttempts(t *testing.T) {
	db := openNumbersTestDB(t)
	user := seedNumbersUser(t, db)
	seedNumberedOrder(t, db, user.ID, "PED-C0111DE0")
	stubNumbers(t, "PED-C0111DE0", maxNumberAttempts)

	svc := &CheckoutService{orderRepo: repositories.NewGORMOrderRepository(db)}
	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		Total:         decimal.NewFromInt(250),
		PaymentMethod: "Pago de prueba",
		PaymentStatus: models.PaymentStatusApproved,
		Status:        models.OrderStatusProcessing,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.insertOrder(tx, order, "")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique order number")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureSummaryTx_RetriesPastNumberCollision(t *testing.T) {
	db := openNumbersTestDB(t)
	user := seedNumbersUser(t, db)

	first := seedNumberedOrder(t, db, user.ID, "PED-00000001")
	receipts := &ReceiptService{db: db, orderRepo: repositories.NewGORMOrderRepository(db)}
	require.NoError(t, db.Create(&models.OrderSummary{
		ID:      uuid.New().String(),
		OrderID: first.ID,
		Number:  "RES-C0111DE0",
		Total:   first.Total,
	}).Error)

	second := seedNumberedOrder(t, db, user.ID, "PED-00000002")
	stubNumbers(t, "RES-C0111DE0", 1)

	var summary *models.OrderSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = receipts.EnsureSummaryTx(tx, second)
		return txErr
	})
	require.NoError(t, err)
	assert.NotEqual(t, "RES-C0111DE0", summary.Number)
	assert.True(t, strings.HasPrefix(summary.Number, "RES-"))
	assert.True(t, summary.Total.Equal(second.Total))
}
