package user

import (
	"context"

	"webify-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines account business logic.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)
	Login(ctx context.Context, params LoginParams) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: hash,
		Role:         "user",
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user registered",
		zap.Uint("user_id", created.ID),
	)

	return created, nil
}

func (s *service) Login(ctx context.Context, params LoginParams) (*User, *TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !CheckPasswordHash(params.Password, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := issueTokenPair(u)
	if err != nil {
		return nil, nil, err
	}

	return u, pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := ParseRefreshJWT(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return issueTokenPair(u)
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func issueTokenPair(u *User) (*TokenPair, error) {
	access, err := GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateRefreshJWT(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
