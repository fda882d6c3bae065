package repositories

import (
	"context"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
)

// SupplierRepositoryFacade defines persistence operations for suppliers.
type SupplierRepositoryFacade interface {
	FindSupplierByID(ctx context.Context, supplierID int64) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	SaveSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error)
}
