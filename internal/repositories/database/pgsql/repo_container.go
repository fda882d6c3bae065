package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		MovementRepo: newPgxMovementRepository(dbPool),
		ProductRepo:  newPgxProductRepository(dbPool),
		SupplierRepo: newPgxSupplierRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
