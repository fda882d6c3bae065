package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

type supplierRow struct {
	SupplierID    int64     `db:"supplier_id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

func (row supplierRow) toDomain() domain.Supplier {
	return domain.Supplier{
		SupplierID: row.SupplierID,
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		IsActive:   row.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			CreatedBy:     row.CreatedBy,
			LastUpdatedAt: row.LastUpdatedAt,
			LastUpdatedBy: row.LastUpdatedBy,
		},
	}
}

const supplierColumns = `supplier_id, name, email, phone, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID int64) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`
	var row supplierRow
	if err := pgxscan.Get(ctx, r.Pool, &row, query, supplierID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFound("supplier", strconv.FormatInt(supplierID, 10))
		}
		return nil, apperrors.NewInternal("failed to find supplier", err)
	}
	supplier := row.toDomain()
	return &supplier, nil
}

// ListSuppliers returns all suppliers ordered by name.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name, supplier_id;`
	var rows []supplierRow
	if err := pgxscan.Select(ctx, r.Pool, &rows, query); err != nil {
		return nil, apperrors.NewInternal("failed to query suppliers", err)
	}
	suppliers := make([]domain.Supplier, len(rows))
	for i, row := range rows {
		suppliers[i] = row.toDomain()
	}
	return suppliers, nil
}

// SaveSupplier persists a new supplier and returns it with its generated ID.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	query := `
		INSERT INTO suppliers (name, email, phone, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + supplierColumns + `;
	`
	var row supplierRow
	err := pgxscan.Get(ctx, r.Pool, &row, query,
		supplier.Name,
		supplier.Email,
		supplier.Phone,
		supplier.IsActive,
		supplier.CreatedAt,
		supplier.CreatedBy,
		supplier.LastUpdatedAt,
		supplier.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewInternal("failed to insert supplier", err)
	}
	saved := row.toDomain()
	return &saved, nil
}
