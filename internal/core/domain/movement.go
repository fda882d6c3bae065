package domain

import "time"

// MovementType indicates whether a movement adds stock or removes it.
type MovementType string

const (
	Incoming MovementType = "INCOMING"
	Outgoing MovementType = "OUTGOING"
)

// IsValid reports whether t is one of the two supported movement types.
func (t MovementType) IsValid() bool {
	return t == Incoming || t == Outgoing
}

// MovementLine is one product-quantity pair within a movement.
type MovementLine struct {
	LineID     string `json:"lineID"`     // Primary Key (UUID)
	MovementID string `json:"movementID"` // FK -> Movement.movementID
	ProductID  string `json:"productID"`  // FK -> Product.productID (weak reference)
	Quantity   int64  `json:"quantity"`   // Always positive

	// Reference data joined from the product catalog. Populated on joined
	// reads only; nil when the store fell back to a bare read.
	Product *ProductRef `json:"product,omitempty"`
}

// ProductRef is the slice of product data joined onto a movement line.
type ProductRef struct {
	ProductID    string `json:"productID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	SupplierID   int64  `json:"supplierID"`
	SupplierName string `json:"supplierName"`
}

// UserRef is the slice of user data joined onto a movement.
type UserRef struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
}

// Movement is a recorded stock change (incoming or outgoing) affecting one or
// more products. Lines and type become immutable 24 hours after MovementDate;
// the whole movement becomes undeletable after 3 days. IsActive is an
// orthogonal soft toggle and takes no part in those time windows.
type Movement struct {
	MovementID   string         `json:"movementID"` // Primary Key (UUID), immutable
	MovementType MovementType   `json:"movementType"`
	Destination  string         `json:"destination"`  // Optional free text
	MovementDate time.Time      `json:"movementDate"` // Defaults to creation time
	UserID       string         `json:"userID"`       // Weak reference to the acting user
	IsActive     bool           `json:"isActive"`
	Lines        []MovementLine `json:"lines"`

	// Joined reference data; nil when unavailable (bare read fallback).
	User *UserRef `json:"user,omitempty"`

	AuditFields
}

// MovementPage is one page of a movement listing.
type MovementPage struct {
	Items      []Movement `json:"items"`
	TotalItems int64      `json:"totalItems"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	PageSize   int        `json:"pageSize"`
}
