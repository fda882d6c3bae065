// Package filter composes optional movement search criteria into a single
// SQL predicate. Criteria arrive as unchecked external input: every option
// validates its own argument and becomes a no-op when the argument is empty
// or malformed, so Build never fails.
package filter

import (
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/stocktrace/stock_movement_app/internal/core/domain"
)

// Column references match the aliases used by the movement store's search
// query: movements m, users u, and the line-level subquery over
// movement_lines ml, products p, suppliers s.
const (
	colMovementType = "m.movement_type"
	colDestination  = "m.destination"
	colMovementDate = "m.movement_date"
	colUserID       = "m.user_id"
	colUserName     = "u.name"
	colLineProduct  = "ml.product_id"
	colLineQuantity = "ml.quantity"
	colProductName  = "p.name"
	colProductCode  = "p.code"
	colSupplierID   = "p.supplier_id"
	colSupplierName = "s.name"
)

// criteria is the accumulated, immutable-per-Build state the options fold
// into. Date and quantity bounds share one field each so repeated calls merge
// instead of stacking conditions.
type criteria struct {
	movementType *domain.MovementType
	destination  *string // escaped substring
	dateFrom     *time.Time
	dateTo       *time.Time
	userID       *string
	userName     *string // escaped substring
	productID    *string
	productName  *string // escaped substring
	productCode  *string // escaped substring
	supplierID   *int64
	supplierName *string // escaped substring
	quantityMin  *int64
	quantityMax  *int64
}

// Option applies one optional search criterion to the accumulated state.
type Option func(*criteria)

// WithType filters by movement type; ignored unless the value is one of the
// two supported types.
func WithType(value string) Option {
	return func(c *criteria) {
		t := domain.MovementType(strings.ToUpper(strings.TrimSpace(value)))
		if !t.IsValid() {
			return
		}
		c.movementType = &t
	}
}

// WithDestination filters by case-insensitive destination substring. Pattern
// metacharacters in the text are escaped so it matches literally.
func WithDestination(text string) Option {
	return substringOption(text, func(c *criteria, s string) { c.destination = &s })
}

// WithDateRange bounds the movement date on both sides; ignored unless both
// values parse. The lower bound is taken as given; only the upper bound is
// normalized to the end of its day.
func WithDateRange(start, end string) Option {
	return func(c *criteria) {
		from, okFrom := parseDate(start)
		to, okTo := parseDate(end)
		if !okFrom || !okTo {
			return
		}
		to = endOfDay(to)
		c.dateFrom = &from
		c.dateTo = &to
	}
}

// WithDateOnAfter sets only the lower date bound; composable with
// WithDateOnBefore.
func WithDateOnAfter(date string) Option {
	return func(c *criteria) {
		d, ok := parseDate(date)
		if !ok {
			return
		}
		c.dateFrom = &d
	}
}

// WithDateOnBefore sets only the upper date bound, normalized to end of day.
func WithDateOnBefore(date string) Option {
	return func(c *criteria) {
		d, ok := parseDate(date)
		if !ok {
			return
		}
		d = endOfDay(d)
		c.dateTo = &d
	}
}

// WithDateExact bounds the movement date to a single calendar day. It shares
// the range field with the other date options: whichever option folds last
// wins.
func WithDateExact(date string) Option {
	return func(c *criteria) {
		d, ok := parseDate(date)
		if !ok {
			return
		}
		from := startOfDay(d)
		to := endOfDay(d)
		c.dateFrom = &from
		c.dateTo = &to
	}
}

// WithUserID filters by the acting user; ignored unless id is a valid UUID.
func WithUserID(id string) Option {
	return uuidOption(id, func(c *criteria, s string) { c.userID = &s })
}

// WithUserName filters by case-insensitive user name substring.
func WithUserName(text string) Option {
	return substringOption(text, func(c *criteria, s string) { c.userName = &s })
}

// WithProductID filters by a line-item product; ignored unless id is a valid UUID.
func WithProductID(id string) Option {
	return uuidOption(id, func(c *criteria, s string) { c.productID = &s })
}

// WithProductName filters by case-insensitive product name substring.
func WithProductName(text string) Option {
	return substringOption(text, func(c *criteria, s string) { c.productName = &s })
}

// WithProductCode filters by case-insensitive product code substring.
func WithProductCode(text string) Option {
	return substringOption(text, func(c *criteria, s string) { c.productCode = &s })
}

// WithSupplierID filters by the line-item product's supplier; ignored unless
// the value parses as an integer.
func WithSupplierID(value string) Option {
	return func(c *criteria) {
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return
		}
		c.supplierID = &id
	}
}

// WithSupplierName filters by case-insensitive supplier name substring.
func WithSupplierName(text string) Option {
	return substringOption(text, func(c *criteria, s string) { c.supplierName = &s })
}

// WithQuantityMin sets the lower bound of the line quantity range; merges
// with WithQuantityMax onto the same field.
func WithQuantityMin(value string) Option {
	return intOption(value, func(c *criteria, n int64) { c.quantityMin = &n })
}

// WithQuantityMax sets the upper bound of the line quantity range.
func WithQuantityMax(value string) Option {
	return intOption(value, func(c *criteria, n int64) { c.quantityMax = &n })
}

// Build folds the given options into one composed predicate. The result is
// empty (len 0) when nothing was set; line-level criteria are wrapped in a
// single EXISTS subquery against the movement's lines.
func Build(opts ...Option) sq.And {
	c := &criteria{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	pred := sq.And{}
	if c.movementType != nil {
		pred = append(pred, sq.Eq{colMovementType: string(*c.movementType)})
	}
	if c.destination != nil {
		pred = append(pred, sq.ILike{colDestination: contains(*c.destination)})
	}
	if c.dateFrom != nil {
		pred = append(pred, sq.GtOrEq{colMovementDate: *c.dateFrom})
	}
	if c.dateTo != nil {
		pred = append(pred, sq.LtOrEq{colMovementDate: *c.dateTo})
	}
	if c.userID != nil {
		pred = append(pred, sq.Eq{colUserID: *c.userID})
	}
	if c.userName != nil {
		pred = append(pred, sq.ILike{colUserName: contains(*c.userName)})
	}

	if line := c.lineConditions(); len(line) > 0 {
		sub := sq.Select("1").
			From("movement_lines ml").
			Join("products p ON p.product_id = ml.product_id").
			LeftJoin("suppliers s ON s.supplier_id = p.supplier_id").
			Where("ml.movement_id = m.movement_id").
			Where(line)
		pred = append(pred, sq.Expr("EXISTS (?)", sub))
	}

	return pred
}

// lineConditions collects the criteria that live on the movement's line
// items rather than on the header row.
func (c *criteria) lineConditions() sq.And {
	line := sq.And{}
	if c.productID != nil {
		line = append(line, sq.Eq{colLineProduct: *c.productID})
	}
	if c.productName != nil {
		line = append(line, sq.ILike{colProductName: contains(*c.productName)})
	}
	if c.productCode != nil {
		line = append(line, sq.ILike{colProductCode: contains(*c.productCode)})
	}
	if c.supplierID != nil {
		line = append(line, sq.Eq{colSupplierID: *c.supplierID})
	}
	if c.supplierName != nil {
		line = append(line, sq.ILike{colSupplierName: contains(*c.supplierName)})
	}
	if c.quantityMin != nil {
		line = append(line, sq.GtOrEq{colLineQuantity: *c.quantityMin})
	}
	if c.quantityMax != nil {
		line = append(line, sq.LtOrEq{colLineQuantity: *c.quantityMax})
	}
	return line
}

// substringOption trims and escapes free text; whitespace-only input is a no-op.
func substringOption(text string, set func(*criteria, string)) Option {
	return func(c *criteria) {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return
		}
		set(c, EscapeLike(trimmed))
	}
}

func uuidOption(id string, set func(*criteria, string)) Option {
	return func(c *criteria) {
		parsed, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			return
		}
		set(c, parsed.String())
	}
}

func intOption(value string, set func(*criteria, int64)) Option {
	return func(c *criteria) {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return
		}
		set(c, n)
	}
}

// EscapeLike escapes the LIKE/ILIKE pattern metacharacters so the input
// matches as a literal substring.
func EscapeLike(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(text)
}

func contains(escaped string) string {
	return "%" + escaped + "%"
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// parseDate accepts the wire formats the API exposes: RFC 3339 timestamps
// and plain calendar dates.
func parseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	return time.Time{}, false
}
