package services

import (
	"context"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/dto"
)

// SupplierSvcFacade defines supplier catalog operations.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID int64) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}
