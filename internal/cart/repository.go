package cart

import (
	"context"
	"database/sql"
	"time"

	"webify-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetOrCreateCart(ctx context.Context, userID uint) (uint, error)
	GetCartByUser(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, userID uint, params AddItemParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateCart(ctx context.Context, userID uint) (uint, error) {
	var cartID uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, userID).Scan(&cartID)
	if err != nil {
		return 0, err
	}
	return cartID, nil
}

func (r *repository) GetCartByUser(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartByUser"),
		zap.Uint("user_id", userID),
	)

	start := time.Now()

	cart := &Cart{UserID: userID}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UpdatedAt)
	if err == sql.ErrNoRows {
		// No persisted cart means an empty cart, not an error.
		cart.recomputeTotals()
		return cart, nil
	}
	if err != nil {
		log.Error("cart lookup failed", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.id,
			ci.product_id,
			p.title,
			p.price,
			ci.quantity,
			c.name,
			ci.created_at
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC
	`, cart.ID)
	if err != nil {
		log.Error("cart items query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Title,
			&item.Price,
			&item.Quantity,
			&item.CategoryName,
			&item.CreatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	cart.recomputeTotals()

	log.Debug("cart loaded",
		zap.Int("items", len(cart.Items)),
		zap.Duration("duration", time.Since(start)),
	)

	return cart, nil
}

func (r *repository) AddItem(ctx context.Context, userID uint, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", params.ProductID),
	)

	cartID, err := r.GetOrCreateCart(ctx, userID)
	if err != nil {
		log.Error("failed to resolve cart", zap.Error(err))
		return nil, err
	}

	// Upsert sums quantities so re-adding the same product merges lines.
	item := &CartItem{ProductID: params.ProductID}
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, quantity, created_at
	`, cartID, params.ProductID, params.Quantity).Scan(
		&item.ID,
		&item.Quantity,
		&item.CreatedAt,
	)
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT p.title, p.price, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`, params.ProductID).Scan(&item.Title, &item.Price, &item.CategoryName)
	if err != nil {
		return nil, err
	}

	log.Info("cart item added", zap.Uint("cart_item_id", item.ID))

	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	// Ownership is enforced in the WHERE so one user cannot touch
	// another's items.
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, itemID)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items ci
		SET quantity = $1, updated_at = NOW()
		FROM carts c
		WHERE ci.id = $2 AND ci.cart_id = c.id AND c.user_id = $3
	`, quantity, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, itemID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1
	`, userID)
	return err
}
