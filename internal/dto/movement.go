package dto

import (
	"time"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
)

// MovementLineRequest is one product-quantity pair in a create/update request.
type MovementLineRequest struct {
	ProductID string `json:"productID" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateMovementRequest defines the data needed to record a movement.
type CreateMovementRequest struct {
	MovementType string                `json:"movementType" binding:"required,oneof=INCOMING OUTGOING"`
	Destination  string                `json:"destination"`
	MovementDate *time.Time            `json:"movementDate"` // Defaults to now when absent
	Lines        []MovementLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateMovementRequest defines the data allowed for updating a movement.
// Pointers distinguish omitted fields from zero values. Lines and type fall
// under the 24-hour edit window; the other fields do not.
type UpdateMovementRequest struct {
	MovementType *string                `json:"movementType" binding:"omitempty,oneof=INCOMING OUTGOING"`
	Destination  *string                `json:"destination"`
	MovementDate *time.Time             `json:"movementDate"`
	Lines        *[]MovementLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// TouchesLockedFields reports whether the update changes line items or type,
// the fields frozen by the edit window.
func (r UpdateMovementRequest) TouchesLockedFields() bool {
	return r.Lines != nil || r.MovementType != nil
}

// ListMovementsParams carries the loose query parameters of the listing
// endpoint. Everything is optional; unusable values are ignored by the store.
type ListMovementsParams struct {
	MovementID  string `form:"movementID"`
	Type        string `form:"type"`
	Destination string `form:"destination"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// SearchMovementsRequest is the advanced-search payload. All criteria are
// optional loose strings; the filter package silently drops what it cannot
// parse.
type SearchMovementsRequest struct {
	Type         string `json:"type"`
	Destination  string `json:"destination"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	ExactDate    string `json:"exactDate"`
	UserID       string `json:"userID"`
	UserName     string `json:"userName"`
	ProductID    string `json:"productID"`
	ProductName  string `json:"productName"`
	ProductCode  string `json:"productCode"`
	SupplierID   string `json:"supplierID"`
	SupplierName string `json:"supplierName"`
	QuantityMin  string `json:"quantityMin"`
	QuantityMax  string `json:"quantityMax"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

// MovementLineResponse mirrors domain.MovementLine.
type MovementLineResponse struct {
	LineID    string             `json:"lineID"`
	ProductID string             `json:"productID"`
	Quantity  int64              `json:"quantity"`
	Product   *domain.ProductRef `json:"product,omitempty"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID    string                 `json:"movementID"`
	MovementType  string                 `json:"movementType"`
	Destination   string                 `json:"destination"`
	MovementDate  time.Time              `json:"movementDate"`
	UserID        string                 `json:"userID"`
	User          *domain.UserRef        `json:"user,omitempty"`
	IsActive      bool                   `json:"isActive"`
	Lines         []MovementLineResponse `json:"lines"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// MovementPageResponse is one page of movement listings.
type MovementPageResponse struct {
	Items      []MovementResponse `json:"items"`
	TotalItems int64              `json:"totalItems"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	PageSize   int                `json:"pageSize"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	lines := make([]MovementLineResponse, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = MovementLineResponse{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Product:   l.Product,
		}
	}
	return MovementResponse{
		MovementID:    m.MovementID,
		MovementType:  string(m.MovementType),
		Destination:   m.Destination,
		MovementDate:  m.MovementDate,
		UserID:        m.UserID,
		User:          m.User,
		IsActive:      m.IsActive,
		Lines:         lines,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToMovementPageResponse converts a domain.MovementPage to its DTO.
func ToMovementPageResponse(p *domain.MovementPage) MovementPageResponse {
	items := make([]MovementResponse, len(p.Items))
	for i := range p.Items {
		items[i] = ToMovementResponse(&p.Items[i])
	}
	return MovementPageResponse{
		Items:      items,
		TotalItems: p.TotalItems,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		PageSize:   p.PageSize,
	}
}
