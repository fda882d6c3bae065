package pgsql

import (
	"context"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	"github.com/stocktrace/stock_movement_app/internal/middleware"
	"github.com/stocktrace/stock_movement_app/internal/utils/filter"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

// psql builds queries with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PgxMovementRepository struct {
	BaseRepository

	// fetch and count are the read seams behind search and FindMovementByID.
	// They default to the pool-backed implementations.
	fetch func(ctx context.Context, pred sq.And, page pagination.Params, joined bool) ([]domain.Movement, error)
	count func(ctx context.Context, pred sq.And) (int64, error)
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	r := &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
	r.fetch = r.fetchPage
	r.count = r.countMovements
	return r
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// movementRow is the scan target for movement headers. user_name is filled by
// the joined read and left NULL by the bare read.
type movementRow struct {
	MovementID    string    `db:"movement_id"`
	MovementType  string    `db:"movement_type"`
	Destination   string    `db:"destination"`
	MovementDate  time.Time `db:"movement_date"`
	UserID        string    `db:"user_id"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
	UserName      *string   `db:"user_name"`
}

// movementLineRow is the scan target for movement lines. The product columns
// are filled by the joined read and left NULL by the bare read.
type movementLineRow struct {
	LineID       string  `db:"line_id"`
	MovementID   string  `db:"movement_id"`
	ProductID    string  `db:"product_id"`
	Quantity     int64   `db:"quantity"`
	ProductCode  *string `db:"product_code"`
	ProductName  *string `db:"product_name"`
	SupplierID   *int64  `db:"supplier_id"`
	SupplierName *string `db:"supplier_name"`
}

func (row movementRow) toDomain() domain.Movement {
	m := domain.Movement{
		MovementID:   row.MovementID,
		MovementType: domain.MovementType(row.MovementType),
		Destination:  row.Destination,
		MovementDate: row.MovementDate,
		UserID:       row.UserID,
		IsActive:     row.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			CreatedBy:     row.CreatedBy,
			LastUpdatedAt: row.LastUpdatedAt,
			LastUpdatedBy: row.LastUpdatedBy,
		},
	}
	if row.UserName != nil {
		m.User = &domain.UserRef{UserID: row.UserID, Name: *row.UserName}
	}
	return m
}

func (row movementLineRow) toDomain() domain.MovementLine {
	line := domain.MovementLine{
		LineID:     row.LineID,
		MovementID: row.MovementID,
		ProductID:  row.ProductID,
		Quantity:   row.Quantity,
	}
	if row.ProductName != nil {
		ref := &domain.ProductRef{ProductID: row.ProductID, Name: *row.ProductName}
		if row.ProductCode != nil {
			ref.Code = *row.ProductCode
		}
		if row.SupplierID != nil {
			ref.SupplierID = *row.SupplierID
		}
		if row.SupplierName != nil {
			ref.SupplierName = *row.SupplierName
		}
		line.Product = ref
	}
	return line
}

// headerQuery selects movement headers. The users join is always present so
// predicates may reference u.name; only the selected columns differ between
// the joined and bare paths.
func headerQuery(joined bool) sq.SelectBuilder {
	userName := "NULL::text AS user_name"
	if joined {
		userName = "u.name AS user_name"
	}
	return psql.Select(
		"m.movement_id", "m.movement_type", "m.destination", "m.movement_date",
		"m.user_id", "m.is_active",
		"m.created_at", "m.created_by", "m.last_updated_at", "m.last_updated_by",
		userName,
	).
		From("movements m").
		LeftJoin("users u ON u.user_id = m.user_id")
}

// lineQuery selects movement lines, either joined with product and supplier
// reference data or bare.
func lineQuery(joined bool, movementIDs []string) sq.SelectBuilder {
	if joined {
		return psql.Select(
			"ml.line_id", "ml.movement_id", "ml.product_id", "ml.quantity",
			"p.code AS product_code", "p.name AS product_name",
			"p.supplier_id", "s.name AS supplier_name",
		).
			From("movement_lines ml").
			Join("products p ON p.product_id = ml.product_id").
			LeftJoin("suppliers s ON s.supplier_id = p.supplier_id").
			Where(sq.Eq{"ml.movement_id": movementIDs}).
			OrderBy("ml.movement_id", "ml.line_id")
	}
	return psql.Select(
		"ml.line_id", "ml.movement_id", "ml.product_id", "ml.quantity",
		"NULL::text AS product_code", "NULL::text AS product_name",
		"NULL::bigint AS supplier_id", "NULL::text AS supplier_name",
	).
		From("movement_lines ml").
		Where(sq.Eq{"ml.movement_id": movementIDs}).
		OrderBy("ml.movement_id", "ml.line_id")
}

// fetchPage runs one paged header query plus the line query for the returned
// headers, assembling full movements. It is the single read path used by both
// the joined and the bare variant.
func (r *PgxMovementRepository) fetchPage(ctx context.Context, pred sq.And, page pagination.Params, joined bool) ([]domain.Movement, error) {
	b := headerQuery(joined)
	if len(pred) > 0 {
		b = b.Where(pred)
	}
	b = b.OrderBy("m.movement_date DESC", "m.movement_id").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset()))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, apperrors.NewInternal("failed to build movement listing query", err)
	}

	var headerRows []movementRow
	if err := pgxscan.Select(ctx, r.Pool, &headerRows, query, args...); err != nil {
		return nil, apperrors.NewInternal("failed to query movements", err)
	}
	if len(headerRows) == 0 {
		return []domain.Movement{}, nil
	}

	movementIDs := make([]string, len(headerRows))
	for i, row := range headerRows {
		movementIDs[i] = row.MovementID
	}

	lineRows, err := r.fetchLines(ctx, movementIDs, joined)
	if err != nil {
		return nil, err
	}

	linesByMovement := make(map[string][]domain.MovementLine, len(headerRows))
	for _, row := range lineRows {
		linesByMovement[row.MovementID] = append(linesByMovement[row.MovementID], row.toDomain())
	}

	movements := make([]domain.Movement, len(headerRows))
	for i, row := range headerRows {
		m := row.toDomain()
		m.Lines = linesByMovement[m.MovementID]
		movements[i] = m
	}
	return movements, nil
}

func (r *PgxMovementRepository) fetchLines(ctx context.Context, movementIDs []string, joined bool) ([]movementLineRow, error) {
	query, args, err := lineQuery(joined, movementIDs).ToSql()
	if err != nil {
		return nil, apperrors.NewInternal("failed to build movement line query", err)
	}
	var rows []movementLineRow
	if err := pgxscan.Select(ctx, r.Pool, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternal("failed to query movement lines", err)
	}
	return rows, nil
}

func (r *PgxMovementRepository) countMovements(ctx context.Context, pred sq.And) (int64, error) {
	b := psql.Select("COUNT(*)").
		From("movements m").
		LeftJoin("users u ON u.user_id = m.user_id")
	if len(pred) > 0 {
		b = b.Where(pred)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, apperrors.NewInternal("failed to build movement count query", err)
	}
	var total int64
	if err := pgxscan.Get(ctx, r.Pool, &total, query, args...); err != nil {
		return 0, apperrors.NewInternal("failed to count movements", err)
	}
	return total, nil
}

// search runs the paged query for a composed predicate. It first attempts the
// joined read; when that fails it falls back to the bare read and returns
// records without reference data rather than propagating the error.
func (r *PgxMovementRepository) search(ctx context.Context, pred sq.And, page pagination.Params) (*domain.MovementPage, error) {
	total, err := r.count(ctx, pred)
	if err != nil {
		return nil, err
	}

	items, err := r.fetch(ctx, pred, page, true)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Joined movement read failed, falling back to bare read",
			slog.String("error", err.Error()))
		items, err = r.fetch(ctx, pred, page, false)
		if err != nil {
			return nil, err
		}
	}

	return &domain.MovementPage{
		Items:      items,
		TotalItems: total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
		PageSize:   page.Limit,
	}, nil
}

// FindMovementByID retrieves a movement with its lines, joined with user and
// product reference data where available.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	pred := sq.And{sq.Eq{"m.movement_id": movementID}}
	items, err := r.fetch(ctx, pred, pagination.Params{Page: 1, Limit: 1}, true)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Joined movement read failed, falling back to bare read",
			slog.String("movement_id", movementID),
			slog.String("error", err.Error()))
		items, err = r.fetch(ctx, pred, pagination.Params{Page: 1, Limit: 1}, false)
		if err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFound("movement", movementID)
	}
	return &items[0], nil
}

// ListMovements returns one page of movements matching the loose criteria.
// A movement ID short-circuits the listing into a point lookup; the remaining
// criteria are translated ad hoc, skipping what cannot be interpreted.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, criteria portsrepo.MovementListCriteria) (*domain.MovementPage, error) {
	page := pagination.Normalize(criteria.Page, criteria.Limit)

	if strings.TrimSpace(criteria.MovementID) != "" {
		movement, err := r.FindMovementByID(ctx, strings.TrimSpace(criteria.MovementID))
		if err != nil {
			return nil, err
		}
		return &domain.MovementPage{
			Items:      []domain.Movement{*movement},
			TotalItems: 1,
			Page:       1,
			TotalPages: 1,
			PageSize:   page.Limit,
		}, nil
	}

	pred := sq.And{}
	if t := domain.MovementType(strings.ToUpper(strings.TrimSpace(criteria.Type))); t.IsValid() {
		pred = append(pred, sq.Eq{"m.movement_type": string(t)})
	}
	if dest := strings.TrimSpace(criteria.Destination); dest != "" {
		pred = append(pred, sq.ILike{"m.destination": "%" + filter.EscapeLike(dest) + "%"})
	}
	if start, ok := parseListDate(criteria.StartDate); ok {
		pred = append(pred, sq.GtOrEq{"m.movement_date": start})
	}
	if end, ok := parseListDate(criteria.EndDate); ok {
		pred = append(pred, sq.LtOrEq{"m.movement_date": endOfDay(end)})
	}

	return r.search(ctx, pred, page)
}

// SearchMovements applies a predicate composed by the filter package.
func (r *PgxMovementRepository) SearchMovements(ctx context.Context, pred sq.And, page pagination.Params) (*domain.MovementPage, error) {
	return r.search(ctx, pred, page)
}

// SaveMovement persists a movement header and its lines in one transaction.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertHeader := `
		INSERT INTO movements (
			movement_id, movement_type, destination, movement_date, user_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertHeader,
		movement.MovementID,
		movement.MovementType,
		movement.Destination,
		movement.MovementDate,
		movement.UserID,
		movement.IsActive,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewInternal("failed to insert movement "+movement.MovementID, err)
	}

	if err := insertLines(ctx, tx, movement.MovementID, movement.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateMovement applies a partial update. When lines are included they
// replace the existing set within the same transaction. Returns the updated
// record joined with reference data.
func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, movementID string, update portsrepo.MovementUpdate) (*domain.Movement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	b := psql.Update("movements").
		Set("last_updated_at", update.LastUpdatedAt).
		Set("last_updated_by", update.LastUpdatedBy).
		Where(sq.Eq{"movement_id": movementID})
	if update.MovementType != nil {
		b = b.Set("movement_type", *update.MovementType)
	}
	if update.Destination != nil {
		b = b.Set("destination", *update.Destination)
	}
	if update.MovementDate != nil {
		b = b.Set("movement_date", *update.MovementDate)
	}
	if update.IsActive != nil {
		b = b.Set("is_active", *update.IsActive)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, apperrors.NewInternal("failed to build movement update query", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternal("failed to update movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFound("movement", movementID)
	}

	if update.Lines != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM movement_lines WHERE movement_id = $1;`, movementID); err != nil {
			return nil, apperrors.NewInternal("failed to replace lines for movement "+movementID, err)
		}
		if err := insertLines(ctx, tx, movementID, *update.Lines); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindMovementByID(ctx, movementID)
}

// DeleteMovement removes a movement and its lines.
func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM movement_lines WHERE movement_id = $1;`, movementID); err != nil {
		return apperrors.NewInternal("failed to delete lines for movement "+movementID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return apperrors.NewInternal("failed to delete movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("movement", movementID)
	}

	return r.Commit(ctx, tx)
}

func insertLines(ctx context.Context, tx pgx.Tx, movementID string, lines []domain.MovementLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineInsert := `
		INSERT INTO movement_lines (line_id, movement_id, product_id, quantity)
		VALUES ($1, $2, $3, $4);
	`
	for _, line := range lines {
		batch.Queue(lineInsert, line.LineID, movementID, line.ProductID, line.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewInternal("failed to insert lines for movement "+movementID, err)
	}
	return nil
}

// parseListDate accepts the loose date formats of the listing endpoint.
func parseListDate(value string) (time.Time, bool) {
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

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
