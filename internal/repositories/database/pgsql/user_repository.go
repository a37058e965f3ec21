package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user facts.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, tenant_id, name, email, is_active, effective_permissions,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.TenantID, &u.Name, &u.Email, &u.IsActive, &u.EffectivePermissions,
		&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByID retrieves a user with their effective permission set.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, tenantID string, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND user_id = $2;`

	user, err := scanUser(r.Pool.QueryRow(ctx, query, tenantID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query user "+userID, err)
	}
	return user, nil
}

// ListActiveUsers retrieves active users ordered by creation time (oldest
// first), then user ID for a stable tie-break.
func (r *PgxUserRepository) ListActiveUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE tenant_id = $1 AND is_active
		ORDER BY created_at, user_id;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return users, nil
}

// CountActiveAdmins counts active users holding the admin permission.
func (r *PgxUserRepository) CountActiveAdmins(ctx context.Context, tenantID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE tenant_id = $1 AND is_active AND $2 = ANY(effective_permissions);
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, tenantID, domain.PermAdmin).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count active admins", err)
	}
	return count, nil
}

// SaveUser inserts a new user. A duplicate (tenant, email) yields ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.TenantID, user.Name, user.Email, user.IsActive, user.EffectivePermissions,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert user "+user.UserID, err)
	}
	return nil
}

// DeactivateUser soft-deactivates a user.
func (r *PgxUserRepository) DeactivateUser(ctx context.Context, tenantID string, userID string, actorID string, at time.Time) error {
	query := `
		UPDATE users
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, userID, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate user "+userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
