package payment

import (
	"context"
	"errors"
	"testing"

	"webify-be/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SavePayment(ctx context.Context, p *Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID int64) (*Payment, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uint, status Status, transactionID *string) error {
	args := m.Called(ctx, id, status, transactionID)
	return args.Error(0)
}

func (m *MockRepository) RecordWebhook(ctx context.Context, gatewayOrderID, transactionID int64, event string) (bool, error) {
	args := m.Called(ctx, gatewayOrderID, transactionID, event)
	return args.Bool(0), args.Error(1)
}

// MockGateway is a mock implementation of the Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateSession(ctx context.Context, orderID uint, amount decimal.Decimal, billing BillingData) (int64, string, error) {
	args := m.Called(ctx, orderID, amount, billing)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *MockGateway) IframeURL(paymentKey string) string {
	args := m.Called(paymentKey)
	return args.String(0)
}

func (m *MockGateway) VerifySignature(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

// MockOrderService is a mock implementation of order.Service
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, params order.CreateOrderParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) MarkPaid(ctx context.Context, orderID uint) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderService) MarkFailed(ctx context.Context, orderID uint) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func newTestService() (Service, *MockRepository, *MockGateway, *MockOrderService) {
	mockRepo := new(MockRepository)
	mockGateway := new(MockGateway)
	mockOrders := new(MockOrderService)
	svc := NewService(mockRepo, mockGateway, mockOrders, "67890", "https://shop.example.com")
	return svc, mockRepo, mockGateway, mockOrders
}

func TestService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, mockRepo, mockGateway, mockOrders := newTestService()

		o := &order.Order{
			ID:     5,
			UserID: 1,
			Email:  "sara@example.com",
			Total:  decimal.RequireFromString("124.00"),
		}
		mockOrders.On("Get", ctx, uint(1), uint(5)).Return(o, nil).Once()
		mockGateway.On("CreateSession", ctx, uint(5), o.Total, mock.AnythingOfType("payment.BillingData")).
			Return(int64(555), "key-abc", nil).Once()
		mockGateway.On("IframeURL", "key-abc").
			Return("https://gateway.example.com/api/acceptance/iframes/67890?payment_token=key-abc").Once()
		mockRepo.On("SavePayment", ctx, mock.AnythingOfType("*payment.Payment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*Payment).ID = 3
			}).
			Return(nil).Once()

		session, err := svc.CreateSession(ctx, 1, CreateSessionParams{OrderID: 5})

		require.NoError(t, err)
		assert.Equal(t, uint(3), session.PaymentID)
		assert.Equal(t, "key-abc", session.PaymentKey)
		assert.Equal(t, "67890", session.IframeID)
		mockRepo.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		svc, _, _, mockOrders := newTestService()

		mockOrders.On("Get", ctx, uint(1), uint(99)).
			Return(nil, order.ErrOrderNotFound).Once()

		_, err := svc.CreateSession(ctx, 1, CreateSessionParams{OrderID: 99})

		assert.Equal(t, ErrOrderNotFound, err)
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		svc, _, mockGateway, mockOrders := newTestService()

		mockOrders.On("Get", ctx, uint(1), uint(5)).
			Return(&order.Order{ID: 5, UserID: 1, Total: decimal.RequireFromString("10.00")}, nil).Once()
		mockGateway.On("CreateSession", ctx, uint(5), mock.Anything, mock.Anything).
			Return(int64(0), "", ErrGatewayUnavailable).Once()

		_, err := svc.CreateSession(ctx, 1, CreateSessionParams{OrderID: 5})

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})
}

func TestService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("PaidSettlesOrder", func(t *testing.T) {
		svc, mockRepo, _, mockOrders := newTestService()

		mockRepo.On("GetByID", ctx, uint(3)).
			Return(&Payment{ID: 3, OrderID: 5, UserID: 1, Status: StatusInitiated}, nil).Once()
		txn := "777"
		mockRepo.On("UpdateStatus", ctx, uint(3), StatusPaid, &txn).Return(nil).Once()
		mockOrders.On("MarkPaid", ctx, uint(5)).Return(nil).Once()

		err := svc.Confirm(ctx, 1, ConfirmParams{PaymentID: 3, TransactionID: "777", Status: StatusPaid})

		assert.NoError(t, err)
		mockOrders.AssertExpectations(t)
	})

	t.Run("FailedMarksOrderFailed", func(t *testing.T) {
		svc, mockRepo, _, mockOrders := newTestService()

		mockRepo.On("GetByID", ctx, uint(3)).
			Return(&Payment{ID: 3, OrderID: 5, UserID: 1}, nil).Once()
		mockRepo.On("UpdateStatus", ctx, uint(3), StatusFailed, (*string)(nil)).Return(nil).Once()
		mockOrders.On("MarkFailed", ctx, uint(5)).Return(nil).Once()

		err := svc.Confirm(ctx, 1, ConfirmParams{PaymentID: 3, Status: StatusFailed})

		assert.NoError(t, err)
	})

	t.Run("RejectsNonTerminalStatus", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService()

		err := svc.Confirm(ctx, 1, ConfirmParams{PaymentID: 3, Status: StatusInitiated})

		assert.Equal(t, ErrInvalidStatus, err)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("OtherUsersPayment", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService()

		mockRepo.On("GetByID", ctx, uint(3)).
			Return(&Payment{ID: 3, OrderID: 5, UserID: 2}, nil).Once()

		err := svc.Confirm(ctx, 1, ConfirmParams{PaymentID: 3, Status: StatusPaid})

		assert.Equal(t, ErrPaymentNotFound, err)
	})
}

func TestService_ProcessWebhook(t *testing.T) {
	ctx := context.Background()
	succeededBody := []byte(`{"event":"payment_succeeded","order":{"id":555},"transaction":{"id":777}}`)

	t.Run("Succeeded", func(t *testing.T) {
		svc, mockRepo, mockGateway, mockOrders := newTestService()

		mockGateway.On("VerifySignature", succeededBody, "sig").Return(true).Once()
		mockRepo.On("RecordWebhook", ctx, int64(555), int64(777), EventPaymentSucceeded).
			Return(true, nil).Once()
		mockRepo.On("GetByGatewayOrderID", ctx, int64(555)).
			Return(&Payment{ID: 3, OrderID: 5, UserID: 1}, nil).Once()
		txn := "777"
		mockRepo.On("UpdateStatus", ctx, uint(3), StatusPaid, &txn).Return(nil).Once()
		mockOrders.On("MarkPaid", ctx, uint(5)).Return(nil).Once()

		err := svc.ProcessWebhook(ctx, succeededBody, "sig")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failed", func(t *testing.T) {
		svc, mockRepo, mockGateway, mockOrders := newTestService()
		body := []byte(`{"event":"payment_failed","order":{"id":555},"transaction":{"id":777}}`)

		mockGateway.On("VerifySignature", body, "sig").Return(true).Once()
		mockRepo.On("RecordWebhook", ctx, int64(555), int64(777), EventPaymentFailed).
			Return(true, nil).Once()
		mockRepo.On("GetByGatewayOrderID", ctx, int64(555)).
			Return(&Payment{ID: 3, OrderID: 5, UserID: 1}, nil).Once()
		mockRepo.On("UpdateStatus", ctx, uint(3), StatusFailed, (*string)(nil)).Return(nil).Once()
		mockOrders.On("MarkFailed", ctx, uint(5)).Return(nil).Once()

		err := svc.ProcessWebhook(ctx, body, "sig")

		assert.NoError(t, err)
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		svc, mockRepo, mockGateway, _ := newTestService()

		mockGateway.On("VerifySignature", succeededBody, "bad").Return(false).Once()

		err := svc.ProcessWebhook(ctx, succeededBody, "bad")

		assert.Equal(t, ErrInvalidSignature, err)
		mockRepo.AssertNotCalled(t, "RecordWebhook")
	})

	t.Run("DuplicateDeliverySkipped", func(t *testing.T) {
		svc, mockRepo, mockGateway, _ := newTestService()

		mockGateway.On("VerifySignature", succeededBody, "sig").Return(true).Once()
		mockRepo.On("RecordWebhook", ctx, int64(555), int64(777), EventPaymentSucceeded).
			Return(false, nil).Once()

		err := svc.ProcessWebhook(ctx, succeededBody, "sig")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "GetByGatewayOrderID")
	})

	t.Run("UnknownPaymentAbsorbed", func(t *testing.T) {
		svc, mockRepo, mockGateway, _ := newTestService()

		mockGateway.On("VerifySignature", succeededBody, "sig").Return(true).Once()
		mockRepo.On("RecordWebhook", ctx, int64(555), int64(777), EventPaymentSucceeded).
			Return(true, nil).Once()
		mockRepo.On("GetByGatewayOrderID", ctx, int64(555)).Return(nil, nil).Once()

		err := svc.ProcessWebhook(ctx, succeededBody, "sig")

		assert.NoError(t, err)
	})

	t.Run("UnhandledEventAbsorbed", func(t *testing.T) {
		svc, mockRepo, mockGateway, _ := newTestService()
		body := []byte(`{"event":"refund_issued","order":{"id":555},"transaction":{"id":777}}`)

		mockGateway.On("VerifySignature", body, "sig").Return(true).Once()
		mockRepo.On("RecordWebhook", ctx, int64(555), int64(777), "refund_issued").
			Return(true, nil).Once()
		mockRepo.On("GetByGatewayOrderID", ctx, int64(555)).
			Return(&Payment{ID: 3, OrderID: 5}, nil).Once()

		err := svc.ProcessWebhook(ctx, body, "sig")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestService_RedirectResult(t *testing.T) {
	svc, _, _, _ := newTestService()

	url := svc.RedirectResult("true", "777", "5")

	assert.Equal(t, "https://shop.example.com/payment-result?order=5&status=true&txn_id=777", url)
}

func TestService_RepositorySaveFailure(t *testing.T) {
	ctx := context.Background()
	svc, mockRepo, mockGateway, mockOrders := newTestService()

	mockOrders.On("Get", ctx, uint(1), uint(5)).
		Return(&order.Order{ID: 5, UserID: 1, Total: decimal.RequireFromString("10.00")}, nil).Once()
	mockGateway.On("CreateSession", ctx, uint(5), mock.Anything, mock.Anything).
		Return(int64(555), "key", nil).Once()
	mockRepo.On("SavePayment", ctx, mock.Anything).
		Return(errors.New("db error")).Once()

	_, err := svc.CreateSession(ctx, 1, CreateSessionParams{OrderID: 5})

	assert.Error(t, err)
}
