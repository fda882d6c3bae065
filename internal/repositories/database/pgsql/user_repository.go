package pgsql

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktrace/stock_movement_app/internal/apperrors"
	"github.com/stocktrace/stock_movement_app/internal/core/domain"
	portsrepo "github.com/stocktrace/stock_movement_app/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

type userRow struct {
	UserID        string     `db:"user_id"`
	Username      string     `db:"username"`
	PasswordHash  string     `db:"password_hash"`
	Name          string     `db:"name"`
	CreatedAt     time.Time  `db:"created_at"`
	CreatedBy     string     `db:"created_by"`
	LastUpdatedAt time.Time  `db:"last_updated_at"`
	LastUpdatedBy string     `db:"last_updated_by"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (row userRow) toDomain() domain.User {
	return domain.User{
		UserID:       row.UserID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Name:         row.Name,
		DeletedAt:    row.DeletedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			CreatedBy:     row.CreatedBy,
			LastUpdatedAt: row.LastUpdatedAt,
			LastUpdatedBy: row.LastUpdatedBy,
		},
	}
}

const userColumns = `user_id, username, password_hash, name,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// FindUserByID retrieves a user by ID, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	var row userRow
	if err := pgxscan.Get(ctx, r.Pool, &row, query, userID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFound("user", userID)
		}
		return nil, apperrors.NewInternal("failed to find user "+userID, err)
	}
	user := row.toDomain()
	return &user, nil
}

// FindUserByUsername retrieves a user by username, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`
	var row userRow
	if err := pgxscan.Get(ctx, r.Pool, &row, query, username); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFound("user", username)
		}
		return nil, apperrors.NewInternal("failed to find user by username", err)
	}
	user := row.toDomain()
	return &user, nil
}

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewInternal("failed to insert user "+user.UserID, err)
	}
	return nil
}
