package services

import (
	"context"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
)

// StockAdapterSvc is the contract the movement service consumes to read and
// adjust product stock. Both calls fail with ErrValidation for a malformed id
// and ErrNotFound for an absent product. Calls are sequential and
// side-effecting; no atomicity is assumed across them.
type StockAdapterSvc interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ApplyProductUpdate(ctx context.Context, productID string, patch portsrepo.ProductStockPatch) (*domain.Product, error)
}
