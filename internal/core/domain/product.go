package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item with a stock level. Movements read and
// patch the stock count through the stock adapter but never create or delete
// products.
type Product struct {
	ProductID     string          `json:"productID"` // Primary Key (UUID)
	Code          string          `json:"code"`      // Short catalog code, unique
	Name          string          `json:"name"`
	SupplierID    int64           `json:"supplierID"` // FK -> Supplier.supplierID
	Price         decimal.Decimal `json:"price"`
	Stock         int64           `json:"stock"`
	LastStockInAt *time.Time      `json:"lastStockInAt,omitempty"` // Stamped by incoming movements
	IsActive      bool            `json:"isActive"`
	AuditFields
}
