package services

import (
	"context"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/dto"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// TokenSvc issues JWT access tokens for authenticated users.
type TokenSvc interface {
	GenerateAccessToken(user *domain.User) (string, error)
}
