package dto

import (
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
)

// CreateSupplierRequest defines the data needed to create a supplier.
type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID int64  `json:"supplierID"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID: s.SupplierID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		IsActive:   s.IsActive,
	}
}
