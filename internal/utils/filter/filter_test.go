package filter_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrace/stock_movement_app/internal/utils/filter"
)

func TestBuild_NoOptionsYieldsEmptyPredicate(t *testing.T) {
	pred := filter.Build()
	assert.Len(t, pred, 0)
}

func TestBuild_InvalidInputsAreNoOps(t *testing.T) {
	pred := filter.Build(
		filter.WithType("TRANSFER"),
		filter.WithDestination("   "),
		filter.WithDateRange("not-a-date", "2024-01-01"),
		filter.WithDateOnAfter("garbage"),
		filter.WithUserID("not-a-uuid"),
		filter.WithProductID(""),
		filter.WithSupplierID("abc"),
		filter.WithQuantityMin("many"),
		filter.WithQuantityMax(""),
	)
	assert.Len(t, pred, 0)
}

func TestBuild_TypeIsCaseInsensitiveAndValidated(t *testing.T) {
	pred := filter.Build(filter.WithType("incoming"))
	require.Len(t, pred, 1)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "m.movement_type = ?")
	assert.Equal(t, []interface{}{"INCOMING"}, args)
}

func TestBuild_QuantityBoundsMergeIntoOneRange(t *testing.T) {
	pred := filter.Build(
		filter.WithQuantityMin("5"),
		filter.WithQuantityMax("50"),
	)
	// A single EXISTS condition carrying both bounds, not two conditions.
	require.Len(t, pred, 1)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "EXISTS (")
	assert.Contains(t, sql, "ml.quantity >= ?")
	assert.Contains(t, sql, "ml.quantity <= ?")
	assert.Equal(t, []interface{}{int64(5), int64(50)}, args)
}

func TestBuild_DestinationMatchesLiterally(t *testing.T) {
	pred := filter.Build(filter.WithDestination("Test (A)"))
	require.Len(t, pred, 1)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "m.destination ILIKE ?")
	require.Len(t, args, 1)
	assert.Equal(t, "%Test (A)%", args[0])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_done`, filter.EscapeLike("100%_done"))
	assert.Equal(t, `C:\\tmp`, filter.EscapeLike(`C:\tmp`))
	assert.Equal(t, "Test (A)", filter.EscapeLike("Test (A)"))
}

func TestBuild_DateExactBoundsOneDay(t *testing.T) {
	pred := filter.Build(filter.WithDateExact("2024-03-15"))
	require.Len(t, pred, 2)

	_, args, err := pred.ToSql()
	require.NoError(t, err)
	require.Len(t, args, 2)

	from := args[0].(time.Time)
	to := args[1].(time.Time)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.UTC), to)
}

func TestBuild_RangeKeepsExactLowerBound(t *testing.T) {
	pred := filter.Build(filter.WithDateRange("2024-03-15T14:30:00Z", "2024-03-20T10:00:00Z"))
	require.Len(t, pred, 2)

	_, args, err := pred.ToSql()
	require.NoError(t, err)
	require.Len(t, args, 2)

	from := args[0].(time.Time)
	to := args[1].(time.Time)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 20, 23, 59, 59, 999999999, time.UTC), to)
}

func TestBuild_RangeOverridesExact(t *testing.T) {
	pred := filter.Build(
		filter.WithDateExact("2024-03-15"),
		filter.WithDateRange("2024-01-01", "2024-02-01"),
	)
	require.Len(t, pred, 2)

	_, args, err := pred.ToSql()
	require.NoError(t, err)
	from := args[0].(time.Time)
	to := args[1].(time.Time)
	assert.Equal(t, 2024, from.Year())
	assert.Equal(t, time.January, from.Month())
	assert.Equal(t, time.February, to.Month())
	assert.Equal(t, 23, to.Hour())
}

func TestBuild_BoundsComposeIndependently(t *testing.T) {
	pred := filter.Build(filter.WithDateOnAfter("2024-05-01"))
	assert.Len(t, pred, 1)

	pred = filter.Build(
		filter.WithDateOnAfter("2024-05-01"),
		filter.WithDateOnBefore("2024-06-01"),
	)
	assert.Len(t, pred, 2)
}

func TestBuild_LineCriteriaShareOneExistsSubquery(t *testing.T) {
	productID := uuid.NewString()
	pred := filter.Build(
		filter.WithProductID(productID),
		filter.WithProductCode("SKU"),
		filter.WithSupplierID("42"),
		filter.WithSupplierName("Acme"),
		filter.WithQuantityMin("1"),
	)
	require.Len(t, pred, 1)

	sql, args, err := pred.ToSql()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(sql, "EXISTS ("))
	assert.Contains(t, sql, "ml.movement_id = m.movement_id")
	assert.Contains(t, sql, "p.code ILIKE ?")
	assert.Contains(t, sql, "s.name ILIKE ?")
	assert.Contains(t, args, productID)
	assert.Contains(t, args, int64(42))
}

func TestBuild_HeaderAndLineCriteriaCombine(t *testing.T) {
	userID := uuid.NewString()
	pred := filter.Build(
		filter.WithType("OUTGOING"),
		filter.WithUserID(userID),
		filter.WithUserName("alice"),
		filter.WithProductName("Widget"),
	)
	require.Len(t, pred, 4)

	sql, _, err := pred.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "m.user_id = ?")
	assert.Contains(t, sql, "u.name ILIKE ?")
	assert.Contains(t, sql, "p.name ILIKE ?")
}
