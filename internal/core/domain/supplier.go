package domain

// Supplier is a product source. Referenced by products and, transitively, by
// movement search filters.
type Supplier struct {
	SupplierID int64  `json:"supplierID"` // Primary Key (bigserial)
	Name       string `json:"name"`
	Email      string `json:"email"` // Nullable
	Phone      string `json:"phone"` // Nullable
	IsActive   bool   `json:"isActive"`
	AuditFields
}
