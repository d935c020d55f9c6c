package product

import (
	"context"
	"errors"
)

var ErrProductNotFound = errors.New("product not found")

// Service defines catalog read logic.
type Service interface {
	GetList(ctx context.Context, opts QueryOptions) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetList(ctx context.Context, opts QueryOptions) ([]*Product, error) {
	return s.repo.GetList(ctx, opts)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}
