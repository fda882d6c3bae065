package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/dto"
	"github.com/stocktrace/stock_movement_app/internal/middleware"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

// productService implements both the catalog-facing product operations and
// the stock adapter contract consumed by the movement service.
type productService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade) *productService {
	return &productService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

var (
	_ portssvc.ProductSvcFacade = (*productService)(nil)
	_ portssvc.StockAdapterSvc  = (*productService)(nil)
)

// CreateProduct creates a new product after checking the supplier exists.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("failed to resolve supplier %d: %w", req.SupplierID, err)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:  uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		SupplierID: req.SupplierID,
		Price:      req.Price,
		Stock:      req.Stock,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("code", product.Code))
	return &product, nil
}

// GetProductByID retrieves a product by its ID.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.FindProductByID(ctx, productID)
}

// ListProducts returns one page of products with the total count.
func (s *productService) ListProducts(ctx context.Context, page dto.PageParams) ([]domain.Product, int64, error) {
	return s.productRepo.ListProducts(ctx, pagination.Normalize(page.Page, page.Limit))
}

// UpdateProduct applies a partial catalog update.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := uuid.Validate(productID); err != nil {
		return nil, apperrors.NewValidation("productID", "product ID must be a valid UUID")
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, *req.SupplierID); err != nil {
			return nil, fmt.Errorf("failed to resolve supplier %d: %w", *req.SupplierID, err)
		}
		product.SupplierID = *req.SupplierID
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("product_id", productID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// FindProductByID implements the stock adapter read.
func (s *productService) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	if err := uuid.Validate(productID); err != nil {
		return nil, apperrors.NewValidation("productID", "product ID must be a valid UUID")
	}
	return s.productRepo.FindProductByID(ctx, productID)
}

// ApplyProductUpdate implements the stock adapter write: it patches stock
// fields only and returns the updated product.
func (s *productService) ApplyProductUpdate(ctx context.Context, productID string, patch portsrepo.ProductStockPatch) (*domain.Product, error) {
	if err := uuid.Validate(productID); err != nil {
		return nil, apperrors.NewValidation("productID", "product ID must be a valid UUID")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, apperrors.NewValidation("stock", "stock must not be negative")
	}
	return s.productRepo.UpdateProductStock(ctx, productID, patch)
}
