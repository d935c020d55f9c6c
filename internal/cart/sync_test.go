package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"webify-be/internal/cartstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockService) AddItem(ctx context.Context, userID uint, params AddItemParams) (*CartItem, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockService) UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockService) ClearCart(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func localItem(id uint, price string, qty int) cartstore.Item {
	return cartstore.Item{ID: id, Title: "item", Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestSynchronizer_RemoveCartItem(t *testing.T) {
	ctx := context.Background()

	t.Run("MirrorsLocallyOnServerSuccess", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(10, "10.00", 2))

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("RemoveItem", ctx, uint(1), uint(3)).Return(nil).Once()

		sync.RemoveCartItem(ctx, 1, 3, 10)

		assert.True(t, local.IsEmpty())
		mockSvc.AssertExpectations(t)
	})

	t.Run("MirrorsLocallyEvenWhenServerFails", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(10, "10.00", 2))

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("RemoveItem", ctx, uint(1), uint(3)).
			Return(errors.New("server down")).Once()

		sync.RemoveCartItem(ctx, 1, 3, 10)

		assert.True(t, local.IsEmpty())
	})

	t.Run("GuestSkipsServer", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(10, "10.00", 2))

		sync := NewSynchronizer(mockSvc, local)

		sync.RemoveCartItem(ctx, 0, 0, 10)

		assert.True(t, local.IsEmpty())
		mockSvc.AssertNotCalled(t, "RemoveItem")
	})
}

func TestSynchronizer_CollectOrderItems(t *testing.T) {
	ctx := context.Background()

	t.Run("ServerCartIsAuthoritative", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(99, "1.00", 1))

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("GetCart", ctx, uint(1)).Return(&Cart{
			UserID: 1,
			Items: []CartItem{
				{ID: 1, ProductID: 10, Title: "Portfolio Template", Price: decimal.RequireFromString("10.00"), Quantity: 2},
			},
		}, nil).Once()

		items, err := sync.CollectOrderItems(ctx, 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(10), items[0].ID)
	})

	t.Run("FallsBackToLocalWhenServerEmpty", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(99, "1.00", 1))

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("GetCart", ctx, uint(1)).Return(&Cart{UserID: 1}, nil).Once()

		items, err := sync.CollectOrderItems(ctx, 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(99), items[0].ID)
	})

	t.Run("FallsBackToLocalWhenServerFails", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(99, "1.00", 1))

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("GetCart", ctx, uint(1)).Return(nil, errors.New("server down")).Once()

		items, err := sync.CollectOrderItems(ctx, 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("ErrorWhenBothEmpty", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("GetCart", ctx, uint(1)).Return(&Cart{UserID: 1}, nil).Once()

		_, err := sync.CollectOrderItems(ctx, 1)

		assert.Equal(t, ErrCartEmpty, err)
	})
}

func TestSynchronizer_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("LocalWinsWhenNewer", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())
		local.Add(ctx, localItem(10, "10.00", 2))

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("GetCart", ctx, uint(1)).Return(&Cart{
			UserID:    1,
			UpdatedAt: time.Now().Add(-time.Hour),
			Items: []CartItem{
				{ID: 1, ProductID: 20, Title: "Old", Price: decimal.RequireFromString("1.00"), Quantity: 1},
			},
		}, nil).Once()
		mockSvc.On("ClearCart", ctx, uint(1)).Return(nil).Once()
		mockSvc.On("AddItem", ctx, uint(1), AddItemParams{ProductID: 10, Quantity: 2}).
			Return(&CartItem{ID: 2, ProductID: 10, Quantity: 2}, nil).Once()

		err := sync.Reconcile(ctx, 1)

		assert.NoError(t, err)
		mockSvc.AssertExpectations(t)
	})

	t.Run("ServerWinsWhenNewer", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())

		sync := NewSynchronizer(mockSvc, local)

		mockSvc.On("GetCart", ctx, uint(1)).Return(&Cart{
			UserID:    1,
			UpdatedAt: time.Now().Add(time.Hour),
			Items: []CartItem{
				{ID: 1, ProductID: 20, Title: "Server Item", Price: decimal.RequireFromString("5.00"), Quantity: 3},
			},
		}, nil).Once()

		err := sync.Reconcile(ctx, 1)

		require.NoError(t, err)
		items := local.Items()
		require.Len(t, items, 1)
		assert.Equal(t, uint(20), items[0].ID)
		assert.Equal(t, 3, local.TotalQuantity())
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		mockSvc := new(MockService)
		local := cartstore.New(ctx, cartstore.NewMemoryStorage())

		sync := NewSynchronizer(mockSvc, local)

		err := sync.Reconcile(ctx, 0)

		assert.Equal(t, ErrUserNotAuthenticated, err)
	})
}

func TestSynchronizer_ClearAll(t *testing.T) {
	ctx := context.Background()
	mockSvc := new(MockService)
	local := cartstore.New(ctx, cartstore.NewMemoryStorage())
	local.Add(ctx, localItem(10, "10.00", 2))

	sync := NewSynchronizer(mockSvc, local)

	mockSvc.On("ClearCart", ctx, uint(1)).Return(nil).Once()

	sync.ClearAll(ctx, 1)

	assert.True(t, local.IsEmpty())
	mockSvc.AssertExpectations(t)
}
