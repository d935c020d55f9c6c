package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"webify-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetList(ctx context.Context, opts QueryOptions) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetList(ctx context.Context, opts QueryOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

	start := time.Now()

	// ---------- pagination ----------
	finalLimit := uint16(20)
	if opts.Limit != nil && *opts.Limit > 0 {
		finalLimit = *opts.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := uint16(1)
	if opts.Page != nil && *opts.Page > 0 {
		finalPage = *opts.Page
	}

	offset := int((finalPage - 1) * finalLimit)

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.Search != nil && *opts.Search != "" {
		where = append(where,
			fmt.Sprintf("p.title ILIKE $%d", len(args)+1),
		)
		args = append(args, "%"+*opts.Search+"%")
	}

	if opts.Category != nil && *opts.Category != "" {
		where = append(where,
			fmt.Sprintf("c.name = $%d", len(args)+1),
		)
		args = append(args, *opts.Category)
	}

	query := `
	SELECT
		p.id,
		p.title,
		p.slug,
		p.description,
		p.price,
		c.name,
		p.photo_url,
		p.live_demo_url,
		p.created_at
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY p.created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result := make([]*Product, 0, finalLimit)
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Slug,
			&p.Description,
			&p.Price,
			&p.CategoryName,
			&p.PhotoURL,
			&p.LiveDemoURL,
			&p.CreatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	query := `
	SELECT
		p.id,
		p.title,
		p.slug,
		p.description,
		p.price,
		c.name,
		p.photo_url,
		p.live_demo_url,
		p.created_at
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.id = $1
	`

	p := &Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.CategoryName,
		&p.PhotoURL,
		&p.LiveDemoURL,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}
