package payment

import (
	"context"
	"encoding/json"
	"net/url"

	"webify-be/internal/logger"
	"webify-be/internal/metrics"
	"webify-be/internal/order"

	"go.uber.org/zap"
)

type Service interface {
	CreateSession(ctx context.Context, userID uint, params CreateSessionParams) (*Session, error)
	Confirm(ctx context.Context, userID uint, params ConfirmParams) error
	ProcessWebhook(ctx context.Context, body []byte, signature string) error
	RedirectResult(success, transactionID, orderID string) string
}

type service struct {
	repo        Repository
	gateway     Gateway
	orderSvc    order.Service
	iframeID    string
	frontendURL string
}

func NewService(repo Repository, gateway Gateway, orderSvc order.Service, iframeID, frontendURL string) Service {
	return &service{
		repo:        repo,
		gateway:     gateway,
		orderSvc:    orderSvc,
		iframeID:    iframeID,
		frontendURL: frontendURL,
	}
}

func (s *service) CreateSession(ctx context.Context, userID uint, params CreateSessionParams) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateSession"),
		zap.Uint("user_id", userID),
		zap.Uint("order_id", params.OrderID),
	)

	o, err := s.orderSvc.Get(ctx, userID, params.OrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	gatewayOrderID, paymentKey, err := s.gateway.CreateSession(ctx, o.ID, o.Total, billingFromOrder(o))
	if err != nil {
		log.Error("gateway session failed", zap.Error(err))
		return nil, err
	}

	p := &Payment{
		OrderID:        o.ID,
		UserID:         userID,
		GatewayOrderID: gatewayOrderID,
		PaymentKey:     paymentKey,
		Status:         StatusInitiated,
	}
	if err := s.repo.SavePayment(ctx, p); err != nil {
		return nil, err
	}

	metrics.PaymentSessions.Inc()

	return &Session{
		PaymentID:  p.ID,
		PaymentKey: paymentKey,
		IframeID:   s.iframeID,
		IframeURL:  s.gateway.IframeURL(paymentKey),
	}, nil
}

// Confirm records the client-reported outcome of the hosted payment frame
// and settles the order accordingly. Only terminal statuses are accepted.
func (s *service) Confirm(ctx context.Context, userID uint, params ConfirmParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Confirm"),
		zap.Uint("payment_id", params.PaymentID),
	)

	if params.Status != StatusPaid && params.Status != StatusFailed {
		return ErrInvalidStatus
	}

	p, err := s.repo.GetByID(ctx, params.PaymentID)
	if err != nil {
		return err
	}
	if p == nil || p.UserID != userID {
		return ErrPaymentNotFound
	}

	var txnID *string
	if params.TransactionID != "" {
		txnID = &params.TransactionID
	}
	if err := s.repo.UpdateStatus(ctx, p.ID, params.Status, txnID); err != nil {
		return err
	}

	switch params.Status {
	case StatusPaid:
		if err := s.orderSvc.MarkPaid(ctx, p.OrderID); err != nil {
			log.Warn("order already settled", zap.Uint("order_id", p.OrderID), zap.Error(err))
		}
	case StatusFailed:
		if err := s.orderSvc.MarkFailed(ctx, p.OrderID); err != nil {
			log.Warn("order already settled", zap.Uint("order_id", p.OrderID), zap.Error(err))
		}
	}

	log.Info("payment confirmed", zap.String("status", string(params.Status)))

	return nil
}

// ProcessWebhook verifies, deduplicates, and applies a gateway callback.
// Duplicate deliveries and callbacks for unknown payments are absorbed with
// a log line so the gateway stops retrying.
func (s *service) ProcessWebhook(ctx context.Context, body []byte, signature string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ProcessWebhook"),
	)

	metrics.WebhooksReceived.Inc()

	if !s.gateway.VerifySignature(body, signature) {
		metrics.WebhooksRejected.Inc()
		log.Warn("webhook signature rejected")
		return ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	if event.Order.ID == 0 {
		log.Error("webhook missing gateway order id")
		return nil
	}

	fresh, err := s.repo.RecordWebhook(ctx, event.Order.ID, event.Transaction.ID, event.Event)
	if err != nil {
		return err
	}
	if !fresh {
		log.Info("duplicate webhook delivery skipped",
			zap.Int64("gateway_order_id", event.Order.ID),
		)
		return nil
	}

	p, err := s.repo.GetByGatewayOrderID(ctx, event.Order.ID)
	if err != nil {
		return err
	}
	if p == nil {
		log.Error("no payment for gateway order",
			zap.Int64("gateway_order_id", event.Order.ID),
		)
		return nil
	}

	switch event.Event {
	case EventPaymentSucceeded:
		txnID := formatTransactionID(event.Transaction.ID)
		if err := s.repo.UpdateStatus(ctx, p.ID, StatusPaid, &txnID); err != nil {
			return err
		}
		if err := s.orderSvc.MarkPaid(ctx, p.OrderID); err != nil {
			log.Warn("order already settled", zap.Uint("order_id", p.OrderID), zap.Error(err))
		}
	case EventPaymentFailed:
		if err := s.repo.UpdateStatus(ctx, p.ID, StatusFailed, nil); err != nil {
			return err
		}
		if err := s.orderSvc.MarkFailed(ctx, p.OrderID); err != nil {
			log.Warn("order already settled", zap.Uint("order_id", p.OrderID), zap.Error(err))
		}
	default:
		log.Warn("unhandled webhook event", zap.String("event", event.Event))
	}

	return nil
}

// RedirectResult builds the frontend URL the visitor lands on after the
// gateway redirects back.
func (s *service) RedirectResult(success, transactionID, orderID string) string {
	q := url.Values{}
	q.Set("status", success)
	q.Set("txn_id", transactionID)
	q.Set("order", orderID)
	return s.frontendURL + "/payment-result?" + q.Encode()
}

// billingFromOrder maps order fields onto the gateway's billing schema.
// Fields the storefront never collects are filled with the gateway's "NA"
// placeholder.
func billingFromOrder(o *order.Order) BillingData {
	b := BillingData{
		Email:       o.Email,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		PhoneNumber: o.Phone,
		Apartment:   "NA",
		Floor:       "NA",
		Street:      o.Address,
		Building:    "NA",
		PostalCode:  o.PostalCode,
		City:        o.City,
		Country:     o.Country,
		State:       "NA",
	}
	if b.Email == "" {
		b.Email = "customer@example.com"
	}
	if b.FirstName == "" {
		b.FirstName = "NA"
	}
	if b.LastName == "" {
		b.LastName = "NA"
	}
	if b.PhoneNumber == "" {
		b.PhoneNumber = "NA"
	}
	if b.Street == "" {
		b.Street = "NA"
	}
	if b.City == "" {
		b.City = "NA"
	}
	if b.Country == "" {
		b.Country = "EG"
	}
	if b.PostalCode == "" {
		b.PostalCode = "NA"
	}
	return b
}
