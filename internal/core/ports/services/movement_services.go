package services

import (
	"context"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/dto"
)

// MovementReaderSvc defines read operations for movement data.
type MovementReaderSvc interface {
	// GetMovementByID retrieves a specific movement by its ID.
	GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovements retrieves a paginated movement listing from loose query
	// parameters.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) (*domain.MovementPage, error)
}

// MovementWriterSvc defines the stock-adjusting write operations.
type MovementWriterSvc interface {
	// CreateMovement validates the request, applies the per-line stock
	// deltas through the stock adapter, and persists the movement.
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest, creatorUserID string) (*domain.Movement, error)

	// UpdateMovement applies changes subject to the 24-hour edit window,
	// compensating stock when lines or type change.
	UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, userID string) (*domain.Movement, error)

	// DeleteMovement removes a movement subject to the 3-day delete window,
	// reversing its stock effect best-effort, and returns the deleted record.
	DeleteMovement(ctx context.Context, movementID string, userID string) (*domain.Movement, error)

	// ActivateMovement and DeactivateMovement toggle the soft status flag;
	// they are not subject to the time windows.
	ActivateMovement(ctx context.Context, movementID string, userID string) (*domain.Movement, error)
	DeactivateMovement(ctx context.Context, movementID string, userID string) (*domain.Movement, error)
}

// MovementSearchSvc defines the search convenience operations.
type MovementSearchSvc interface {
	// ListByType lists movements of one type; the type must be valid.
	ListByType(ctx context.Context, movementType string, page dto.PageParams) (*domain.MovementPage, error)

	// ListByPeriod lists movements between two dates; both must parse and
	// start must not be after end.
	ListByPeriod(ctx context.Context, startDate, endDate string, page dto.PageParams) (*domain.MovementPage, error)

	// ListByProduct lists movements touching one product.
	ListByProduct(ctx context.Context, productID string, page dto.PageParams) (*domain.MovementPage, error)

	// ListByUser lists movements recorded by one user.
	ListByUser(ctx context.Context, userID string, page dto.PageParams) (*domain.MovementPage, error)

	// AdvancedSearch folds arbitrary loose criteria through the filter
	// package; invalid criteria are ignored rather than rejected.
	AdvancedSearch(ctx context.Context, req dto.SearchMovementsRequest) (*domain.MovementPage, error)
}

// MovementSvcFacade combines all movement-related service interfaces.
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
	MovementSearchSvc
}
