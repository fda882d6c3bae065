package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

// MovementReadFallbackTestSuite exercises the joined-read to bare-read
// fallback through the repository's fetch and count seams, without a live
// database.
type MovementReadFallbackTestSuite struct {
	suite.Suite
	repo        *PgxMovementRepository
	fetchJoined []bool // joined flag of each fetch call, in order
	ctx         context.Context
}

func TestMovementReadFallbackSuite(t *testing.T) {
	suite.Run(t, new(MovementReadFallbackTestSuite))
}

func (suite *MovementReadFallbackTestSuite) SetupTest() {
	suite.repo = &PgxMovementRepository{}
	suite.fetchJoined = nil
	suite.ctx = context.Background()
	suite.repo.count = func(ctx context.Context, pred sq.And) (int64, error) {
		return 1, nil
	}
}

// stubFetch records the joined flag of every call and delegates per variant.
func (suite *MovementReadFallbackTestSuite) stubFetch(
	joinedItems []domain.Movement, joinedErr error,
	bareItems []domain.Movement, bareErr error,
) {
	suite.repo.fetch = func(ctx context.Context, pred sq.And, page pagination.Params, joined bool) ([]domain.Movement, error) {
		suite.fetchJoined = append(suite.fetchJoined, joined)
		if joined {
			return joinedItems, joinedErr
		}
		return bareItems, bareErr
	}
}

func joinedMovement() domain.Movement {
	userID := uuid.NewString()
	return domain.Movement{
		MovementID:   uuid.NewString(),
		MovementType: domain.Incoming,
		Destination:  "Main warehouse",
		MovementDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		UserID:       userID,
		IsActive:     true,
		User:         &domain.UserRef{UserID: userID, Name: "Alice"},
	}
}

func bareMovement() domain.Movement {
	m := joinedMovement()
	m.User = nil
	return m
}

func (suite *MovementReadFallbackTestSuite) TestSearch_PrefersJoinedRead() {
	joined := joinedMovement()
	suite.stubFetch([]domain.Movement{joined}, nil, nil, errors.New("bare path must not run"))

	page, err := suite.repo.search(suite.ctx, sq.And{}, pagination.Params{Page: 1, Limit: 10})

	suite.NoError(err)
	suite.Equal([]bool{true}, suite.fetchJoined)
	suite.Require().Len(page.Items, 1)
	suite.Require().NotNil(page.Items[0].User)
	suite.Equal("Alice", page.Items[0].User.Name)
}

func (suite *MovementReadFallbackTestSuite) TestSearch_FallsBackToBareRead() {
	bare := bareMovement()
	suite.stubFetch(nil, apperrors.NewInternal("failed to query movements", errors.New("users relation unavailable")),
		[]domain.Movement{bare}, nil)

	page, err := suite.repo.search(suite.ctx, sq.And{}, pagination.Params{Page: 1, Limit: 10})

	suite.NoError(err)
	suite.Equal([]bool{true, false}, suite.fetchJoined)
	suite.Require().Len(page.Items, 1)
	suite.Equal(bare.MovementID, page.Items[0].MovementID)
	suite.Nil(page.Items[0].User)
	suite.Equal(int64(1), page.TotalItems)
	suite.Equal(1, page.Page)
	suite.Equal(10, page.PageSize)
}

func (suite *MovementReadFallbackTestSuite) TestSearch_BareReadFailurePropagates() {
	suite.stubFetch(nil, apperrors.NewInternal("failed to query movements", errors.New("joined down")),
		nil, apperrors.NewInternal("failed to query movements", errors.New("bare down")))

	page, err := suite.repo.search(suite.ctx, sq.And{}, pagination.Params{Page: 1, Limit: 10})

	suite.Nil(page)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.Equal([]bool{true, false}, suite.fetchJoined)
}

func (suite *MovementReadFallbackTestSuite) TestSearch_CountFailureStopsBeforeFetch() {
	suite.repo.count = func(ctx context.Context, pred sq.And) (int64, error) {
		return 0, apperrors.NewInternal("failed to count movements", errors.New("count down"))
	}
	suite.stubFetch(nil, nil, nil, nil)

	page, err := suite.repo.search(suite.ctx, sq.And{}, pagination.Params{Page: 1, Limit: 10})

	suite.Nil(page)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.Empty(suite.fetchJoined)
}

func (suite *MovementReadFallbackTestSuite) TestFindMovementByID_FallsBackToBareRead() {
	bare := bareMovement()
	suite.stubFetch(nil, apperrors.NewInternal("failed to query movements", errors.New("joined down")),
		[]domain.Movement{bare}, nil)

	movement, err := suite.repo.FindMovementByID(suite.ctx, bare.MovementID)

	suite.NoError(err)
	suite.Equal([]bool{true, false}, suite.fetchJoined)
	suite.Require().NotNil(movement)
	suite.Equal(bare.MovementID, movement.MovementID)
	suite.Nil(movement.User)
}

func (suite *MovementReadFallbackTestSuite) TestFindMovementByID_NotFoundAfterFallback() {
	suite.stubFetch(nil, apperrors.NewInternal("failed to query movements", errors.New("joined down")),
		[]domain.Movement{}, nil)

	movement, err := suite.repo.FindMovementByID(suite.ctx, uuid.NewString())

	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
