package payment

import (
	"context"
	"database/sql"

	"webify-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	SavePayment(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID int64) (*Payment, error)
	UpdateStatus(ctx context.Context, id uint, status Status, transactionID *string) error
	RecordWebhook(ctx context.Context, gatewayOrderID, transactionID int64, event string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SavePayment(ctx context.Context, p *Payment) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SavePayment"),
		zap.Uint("order_id", p.OrderID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, user_id, gateway_order_id, payment_key, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.OrderID, p.UserID, p.GatewayOrderID, p.PaymentKey, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("payment insert failed", zap.Error(err))
		return err
	}

	log.Info("payment saved", zap.Uint("payment_id", p.ID))

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Payment, error) {
	p := &Payment{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, user_id, gateway_order_id, payment_key,
		       transaction_id, status, created_at, updated_at
		FROM payments
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.GatewayOrderID, &p.PaymentKey,
		&p.TransactionID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID int64) (*Payment, error) {
	p := &Payment{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, user_id, gateway_order_id, payment_key,
		       transaction_id, status, created_at, updated_at
		FROM payments
		WHERE gateway_order_id = $1
	`, gatewayOrderID).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.GatewayOrderID, &p.PaymentKey,
		&p.TransactionID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status, transactionID *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $1,
		    transaction_id = COALESCE($2, transaction_id),
		    updated_at = NOW()
		WHERE id = $3
	`, status, transactionID, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// RecordWebhook inserts a delivery marker for the event. A duplicate
// delivery hits the unique constraint and reports false, so the caller can
// skip reprocessing.
func (r *repository) RecordWebhook(ctx context.Context, gatewayOrderID, transactionID int64, event string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_webhooks (gateway_order_id, transaction_id, event)
		VALUES ($1, $2, $3)
		ON CONFLICT (gateway_order_id, transaction_id, event) DO NOTHING
	`, gatewayOrderID, transactionID, event)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
