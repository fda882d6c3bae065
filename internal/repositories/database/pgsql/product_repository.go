package pgsql

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
	"github.com/stocktrace/stock_movement_app/internal/utils/pagination"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

type productRow struct {
	ProductID     string          `db:"product_id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	SupplierID    int64           `db:"supplier_id"`
	Price         decimal.Decimal `db:"price"`
	Stock         int64           `db:"stock"`
	LastStockInAt *time.Time      `db:"last_stock_in_at"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}

func (row productRow) toDomain() domain.Product {
	return domain.Product{
		ProductID:     row.ProductID,
		Code:          row.Code,
		Name:          row.Name,
		SupplierID:    row.SupplierID,
		Price:         row.Price,
		Stock:         row.Stock,
		LastStockInAt: row.LastStockInAt,
		IsActive:      row.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			CreatedBy:     row.CreatedBy,
			LastUpdatedAt: row.LastUpdatedAt,
			LastUpdatedBy: row.LastUpdatedBy,
		},
	}
}

const productColumns = `product_id, code, name, supplier_id, price, stock, last_stock_in_at, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	var row productRow
	if err := pgxscan.Get(ctx, r.Pool, &row, query, productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFound("product", productID)
		}
		return nil, apperrors.NewInternal("failed to find product "+productID, err)
	}
	product := row.toDomain()
	return &product, nil
}

// ListProducts returns one page of products ordered by name, with the total count.
func (r *PgxProductRepository) ListProducts(ctx context.Context, page pagination.Params) ([]domain.Product, int64, error) {
	var total int64
	if err := pgxscan.Get(ctx, r.Pool, &total, `SELECT COUNT(*) FROM products;`); err != nil {
		return nil, 0, apperrors.NewInternal("failed to count products", err)
	}

	query, args, err := psql.Select(
		"product_id", "code", "name", "supplier_id", "price", "stock", "last_stock_in_at", "is_active",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	).
		From("products").
		OrderBy("name", "product_id").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to build product listing query", err)
	}

	var rows []productRow
	if err := pgxscan.Select(ctx, r.Pool, &rows, query, args...); err != nil {
		return nil, 0, apperrors.NewInternal("failed to query products", err)
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toDomain()
	}
	return products, total, nil
}

// SaveProduct persists a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (
			product_id, code, name, supplier_id, price, stock, last_stock_in_at, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Code,
		product.Name,
		product.SupplierID,
		product.Price,
		product.Stock,
		product.LastStockInAt,
		product.IsActive,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewInternal("failed to insert product "+product.ProductID, err)
	}
	return nil
}

// UpdateProduct overwrites the catalog fields of an existing product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET code = $2, name = $3, supplier_id = $4, price = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Code,
		product.Name,
		product.SupplierID,
		product.Price,
		product.IsActive,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewInternal("failed to update product "+product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("product", product.ProductID)
	}
	return nil
}

// UpdateProductStock patches the stock fields only and returns the updated
// product.
func (r *PgxProductRepository) UpdateProductStock(ctx context.Context, productID string, patch portsrepo.ProductStockPatch) (*domain.Product, error) {
	b := psql.Update("products").
		Set("last_updated_at", time.Now().UTC()).
		Set("last_updated_by", patch.LastUpdatedBy).
		Where(sq.Eq{"product_id": productID}).
		Suffix("RETURNING " + productColumns)
	if patch.Stock != nil {
		b = b.Set("stock", *patch.Stock)
	}
	if patch.LastStockInAt != nil {
		b = b.Set("last_stock_in_at", *patch.LastStockInAt)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, apperrors.NewInternal("failed to build stock update query", err)
	}

	var row productRow
	if err := pgxscan.Get(ctx, r.Pool, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFound("product", productID)
		}
		return nil, apperrors.NewInternal("failed to update stock for product "+productID, err)
	}
	product := row.toDomain()
	return &product, nil
}
