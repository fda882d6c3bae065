package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Code       string          `json:"code" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	SupplierID int64           `json:"supplierID" binding:"required,gt=0"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
type UpdateProductRequest struct {
	Code       *string          `json:"code"`
	Name       *string          `json:"name"`
	SupplierID *int64           `json:"supplierID"`
	Price      *decimal.Decimal `json:"price"`
	IsActive   *bool            `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	SupplierID    int64           `json:"supplierID"`
	Price         decimal.Decimal `json:"price"`
	Stock         int64           `json:"stock"`
	LastStockInAt *time.Time      `json:"lastStockInAt,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Code:          p.Code,
		Name:          p.Name,
		SupplierID:    p.SupplierID,
		Price:         p.Price,
		Stock:         p.Stock,
		LastStockInAt: p.LastStockInAt,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}
