package order

import (
	"context"
	"database/sql"
	"time"

	"webify-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error)
	GetOrderByID(ctx context.Context, orderID uint) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID uint, from, to PaymentStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order, snapshots its items, and clears the
// user's cart in one transaction.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
		zap.String("order_number", o.OrderNumber),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, payment_status,
			first_name, last_name, email, phone,
			address, city, country, postal_code,
			subtotal, discount, shipping, tax, total
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at
	`,
		o.OrderNumber, o.UserID, o.PaymentStatus,
		o.FirstName, o.LastName, o.Email, o.Phone,
		o.Address, o.City, o.Country, o.PostalCode,
		o.Subtotal, o.Discount, o.Shipping, o.Tax, o.Total,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("order insert failed", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, title, price, quantity)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, o.ID, item.ProductID, item.Title, item.Price, item.Quantity).Scan(&item.ID)
		if err != nil {
			log.Error("order item insert failed",
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	// Placing the order consumes the server cart.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1
	`, o.UserID)
	if err != nil {
		log.Error("cart clear failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return err
	}

	log.Info("order created", zap.Uint("order_id", o.ID))

	return nil
}

func (r *repository) GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrdersByUser"),
		zap.Uint("user_id", userID),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, order_number, user_id, payment_status,
			first_name, last_name, email, phone,
			address, city, country, postal_code,
			subtotal, discount, shipping, tax, total,
			created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := scanOrder(rows, o); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders loaded",
		zap.Int("count", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID uint) (*Order, error) {
	o := &Order{}
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, order_number, user_id, payment_status,
			first_name, last_name, email, phone,
			address, city, country, postal_code,
			subtotal, discount, shipping, tax, total,
			created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID)
	if err := scanOrder(row, o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, title, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Title, &item.Price, &item.Quantity,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}

// UpdatePaymentStatus moves the status only when the current value matches
// the expected one, so a late webhook cannot overwrite a settled order.
func (r *repository) UpdatePaymentStatus(ctx context.Context, orderID uint, from, to PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2 AND payment_status = $3
	`, to, orderID, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusNotMutable
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, o *Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.PaymentStatus,
		&o.FirstName, &o.LastName, &o.Email, &o.Phone,
		&o.Address, &o.City, &o.Country, &o.PostalCode,
		&o.Subtotal, &o.Discount, &o.Shipping, &o.Tax, &o.Total,
		&o.CreatedAt, &o.UpdatedAt,
	)
}
