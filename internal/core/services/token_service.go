package services

import (
	"time"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/utils"
)

type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a JWT token service.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvc {
	return &tokenService{
		secret: secret,
		expiry: expiry,
		issuer: issuer,
	}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

// GenerateAccessToken issues a signed access token with the user ID as subject.
func (s *tokenService) GenerateAccessToken(user *domain.User) (string, error) {
	return utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer)
}
