package services_test

import (
	"fmt"
	"testing"

	"muebleria/internal/repositories"
	"muebleria/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"muebleria/pkg/mailer"
)

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(msg mailer.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func TestSendSummaryEmail_Success(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	receipts := services.NewReceiptService(db, orderRepo)

	user := createTestUser(t, db, false)
	order := createTestOrder(t, db, user.ID)
	_, err := receipts.EnsureSummary(order)
	require.NoError(t, err)

	mockMailer := new(MockMailer)
	mockMailer.On("Send", mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == user.Email &&
			msg.Subject == fmt.Sprintf("Resumen de Pedido #%s - Mueblería OPTI", order.Number)
	})).Return(nil).Once()

	notifications := services.NewNotificationService(orderRepo, mockMailer)
	sent := notifications.SendSummaryEmail(order.ID, "")
	assert.True(t, sent)
	mockMailer.AssertExpectations(t)

	// The summary is stamped as sent.
	summary, err := orderRepo.GetSummary(order.ID)
	require.NoError(t, err)
	assert.True(t, summary.SentByEmail)
	require.NotNil(t, summary.EmailSentAt)
}

func TestSendSummaryEmail_ExplicitDestination(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	receipts := services.NewReceiptService(db, orderRepo)

	user := createTestUser(t, db, false)
	order := createTestOrder(t, db, user.ID)
	_, err := receipts.EnsureSummary(order)
	require.NoError(t, err)

	mockMailer := new(MockMailer)
	mockMailer.On("Send", mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To == "otra@example.com"
	})).Return(nil).Once()

	notifications := services.NewNotificationService(orderRepo, mockMailer)
	sent := notifications.SendSummaryEmail(order.ID, "otra@example.com")
	assert.True(t, sent)
	mockMailer.AssertExpectations(t)
}

func TestSendSummaryEmail_AttachesStoredPDF(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	receipts := services.NewReceiptService(db, orderRepo)

	user := createTestUser(t, db, false)
	order := createTestOrder(t, db, user.ID)
	summary, err := receipts.EnsureSummary(order)
	require.NoError(t, err)

	pdf := []byte("%PDF-1.4 attached")
	require.NoError(t, receipts.AttachPDF(summary, pdf, order.Number))

	mockMailer := new(MockMailer)
	mockMailer.On("Send", mock.MatchedBy(func(msg mailer.Message) bool {
		return len(msg.Attachment) > 0 &&
			msg.AttachmentName == fmt.Sprintf("resumen_pedido_%s.pdf", order.Number)
	})).Return(nil).Once()

	notifications := services.NewNotificationService(orderRepo, mockMailer)
	assert.True(t, notifications.SendSummaryEmail(order.ID, ""))
	mockMailer.AssertExpectations(t)
}

func TestSendSummaryEmail_TransportFailure(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	receipts := services.NewReceiptService(db, orderRepo)

	user := createTestUser(t, db, false)
	order := createTestOrder(t, db, user.ID)
	_, err := receipts.EnsureSummary(order)
	require.NoError(t, err)

	mockMailer := new(MockMailer)
	mockMailer.On("Send", mock.Anything).Return(fmt.Errorf("smtp connection refused")).Once()

	notifications := services.NewNotificationService(orderRepo, mockMailer)
	sent := notifications.SendSummaryEmail(order.ID, "")
	assert.False(t, sent)
	mockMailer.AssertExpectations(t)

	// Failed sends never stamp the summary.
	summary, err := orderRepo.GetSummary(order.ID)
	require.NoError(t, err)
	assert.False(t, summary.SentByEmail)
	assert.Nil(t, summary.EmailSentAt)
}

func TestSendSummaryEmail_UnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	mockMailer := new(MockMailer)
	notifications := services.NewNotificationService(orderRepo, mockMailer)
	assert.False(t, notifications.SendSummaryEmail("missing-order", ""))
	mockMailer.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSendSummaryEmail_NoSummaryYet(t *testing.T) {
	db := setupTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	user := createTestUser(t, db, false)
	order := createTestOrder(t, db, user.ID)

	mockMailer := new(MockMailer)
	notifications := services.NewNotificationService(orderRepo, mockMailer)
	assert.False(t, notifications.SendSummaryEmail(order.ID, ""))
	mockMailer.AssertNotCalled(t, "Send", mock.Anything)
}
