package order

import (
	"context"

	"webify-be/internal/logger"
	"webify-be/internal/metrics"
	"webify-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, params CreateOrderParams) (*Order, error)
	List(ctx context.Context, userID uint) ([]*Order, error)
	Get(ctx context.Context, userID, orderID uint) (*Order, error)
	MarkPaid(ctx context.Context, orderID uint) error
	MarkFailed(ctx context.Context, orderID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("user_id", params.UserID),
	)

	if len(params.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	o := &Order{
		OrderNumber:   utils.GenerateOrderNumber(),
		UserID:        params.UserID,
		PaymentStatus: PaymentPending,

		FirstName:  params.Form.FirstName,
		LastName:   params.Form.LastName,
		Email:      params.Form.Email,
		Phone:      params.Form.Phone,
		Address:    params.Form.Address,
		City:       params.Form.City,
		Country:    params.Form.Country,
		PostalCode: params.Form.PostalCode,

		Subtotal: params.Totals.Subtotal,
		Discount: params.Totals.Discount,
		Shipping: params.Totals.Shipping,
		Tax:      params.Totals.Tax,
		Total:    params.Totals.Total,

		Items: params.Items,
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("create order failed", zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.Total.StringFixed(2)),
	)

	return o, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// Get is owner scoped. Someone else's order id reads as not found.
func (s *service) Get(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) MarkPaid(ctx context.Context, orderID uint) error {
	if err := s.repo.UpdatePaymentStatus(ctx, orderID, PaymentPending, PaymentComplete); err != nil {
		return err
	}
	metrics.OrdersPaid.Inc()
	return nil
}

func (s *service) MarkFailed(ctx context.Context, orderID uint) error {
	if err := s.repo.UpdatePaymentStatus(ctx, orderID, PaymentPending, PaymentFailed); err != nil {
		return err
	}
	metrics.OrdersFailed.Inc()
	return nil
}
