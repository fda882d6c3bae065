package repositories

import (
	"context"
	"time"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

// ProductStockPatch is the partial update the stock adapter applies on behalf
// of movements. Nil fields are left untouched.
type ProductStockPatch struct {
	Stock         *int64
	LastStockInAt *time.Time
	LastUpdatedBy string
}

// ProductReader defines read operations for product data.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, page pagination.Params) ([]domain.Product, int64, error)
}

// ProductWriter defines write operations for product data.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error

	// UpdateProductStock patches stock-related fields only and returns the
	// updated product. Fails with NotFound when nothing matched.
	UpdateProductStock(ctx context.Context, productID string, patch ProductStockPatch) (*domain.Product, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
