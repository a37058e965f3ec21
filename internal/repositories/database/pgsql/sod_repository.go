package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
)

type PgxSoDRepository struct {
	BaseRepository
}

// newPgxSoDRepository creates a new repository for segregation-of-duties configuration.
func newPgxSoDRepository(pool *pgxpool.Pool) portsrepo.SoDRepositoryFacade {
	return &PgxSoDRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SoDRepositoryFacade = (*PgxSoDRepository)(nil)

// ListSoDRules retrieves the tenant's configured forbidden permission pairs.
func (r *PgxSoDRepository) ListSoDRules(ctx context.Context, tenantID string) ([]domain.SoDRule, error) {
	query := `
		SELECT rule_id, tenant_id, first_permission, second_permission, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sod_rules
		WHERE tenant_id = $1
		ORDER BY rule_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query SoD rules", err)
	}
	defer rows.Close()

	var rules []domain.SoDRule
	for rows.Next() {
		var rule domain.SoDRule
		var description *string
		if err := rows.Scan(
			&rule.RuleID, &rule.TenantID, &rule.FirstPermission, &rule.SecondPermission, &description,
			&rule.CreatedAt, &rule.CreatedBy, &rule.LastUpdatedAt, &rule.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan SoD rule row", err)
		}
		if description != nil {
			rule.Description = *description
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating SoD rule rows", err)
	}
	return rules, nil
}

// FindRolesByIDs retrieves roles with their permission sets.
func (r *PgxSoDRepository) FindRolesByIDs(ctx context.Context, tenantID string, roleIDs []string) ([]domain.Role, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT role_id, tenant_id, name, permissions
		FROM roles
		WHERE tenant_id = $1 AND role_id = ANY($2)
		ORDER BY role_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, roleIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.RoleID, &role.TenantID, &role.Name, &role.Permissions); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan role row", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating role rows", err)
	}
	return roles, nil
}
