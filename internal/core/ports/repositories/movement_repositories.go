package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

// MovementListCriteria carries the loose query parameters of the common
// listing endpoint. Strings arrive unvalidated; the store ignores what it
// cannot interpret. MovementID short-circuits the listing into a point lookup.
type MovementListCriteria struct {
	MovementID  string
	Type        string
	Destination string
	StartDate   string
	EndDate     string
	Page        int
	Limit       int
}

// MovementUpdate is a partial movement update. Nil fields are left untouched.
type MovementUpdate struct {
	MovementType  *domain.MovementType
	Destination   *string
	MovementDate  *time.Time
	Lines         *[]domain.MovementLine
	IsActive      *bool
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// MovementReader defines read operations for movement data.
type MovementReader interface {
	// FindMovementByID retrieves a specific movement with its lines, joined
	// with reference data where available.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovements returns one page of movements matching the loose
	// criteria, newest movement date first. If criteria.MovementID is set the
	// page holds the single matching record or the call fails with NotFound.
	ListMovements(ctx context.Context, criteria MovementListCriteria) (*domain.MovementPage, error)
}

// MovementWriter defines write operations for movement data.
type MovementWriter interface {
	// SaveMovement persists a movement header and its lines in one database
	// transaction. Stock side effects are the service's concern, not the store's.
	SaveMovement(ctx context.Context, movement domain.Movement) error

	// UpdateMovement applies a partial update and returns the updated record
	// joined with reference data. Fails with NotFound when nothing matched.
	UpdateMovement(ctx context.Context, movementID string, update MovementUpdate) (*domain.Movement, error)

	// DeleteMovement removes a movement and its lines. Fails with NotFound
	// when nothing matched.
	DeleteMovement(ctx context.Context, movementID string) error
}

// MovementSearcher runs predicate-based searches built by the filter package.
type MovementSearcher interface {
	// SearchMovements applies a composed predicate with the same pagination
	// and ordering rules as ListMovements.
	SearchMovements(ctx context.Context, pred sq.And, page pagination.Params) (*domain.MovementPage, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
	MovementSearcher
}
