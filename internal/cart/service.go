package cart

import (
	"context"

	"webify-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, userID uint, params AddItemParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	return s.repo.GetCartByUser(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID uint, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
	)

	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	item, err := s.repo.AddItem(ctx, userID, params)
	if err != nil {
		log.Error("add item failed", zap.Error(err))
		return nil, err
	}

	return item, nil
}

func (s *service) UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	return s.repo.UpdateItemQuantity(ctx, userID, itemID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.repo.RemoveItem(ctx, userID, itemID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.ClearCart(ctx, userID)
}
