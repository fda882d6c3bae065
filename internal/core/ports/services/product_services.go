package services

import (
	"context"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/dto"
)

// ProductSvcFacade defines the catalog-facing product operations. The stock
// adapter contract lives separately in StockAdapterSvc; the product service
// implements both.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, page dto.PageParams) ([]domain.Product, int64, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
}
