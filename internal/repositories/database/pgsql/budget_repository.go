package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget lines.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// FindBudgetLine retrieves the budget line for an (account, period, department)
// combination. A nil department matches the undimensioned line.
func (r *PgxBudgetRepository) FindBudgetLine(ctx context.Context, tenantID string, accountID string, periodID string, departmentID *string) (*domain.BudgetLine, error) {
	query := `
		SELECT budget_line_id, tenant_id, account_id, period_id, department_id,
		       approved_amount, committed_amount, actual_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budget_lines
		WHERE tenant_id = $1 AND account_id = $2 AND period_id = $3
		  AND department_id IS NOT DISTINCT FROM $4;
	`
	var line domain.BudgetLine
	err := r.Pool.QueryRow(ctx, query, tenantID, accountID, periodID, departmentID).Scan(
		&line.BudgetLineID, &line.TenantID, &line.AccountID, &line.PeriodID, &line.DepartmentID,
		&line.ApprovedAmount, &line.CommittedAmount, &line.ActualAmount,
		&line.CreatedAt, &line.CreatedBy, &line.LastUpdatedAt, &line.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query budget line for account "+accountID, err)
	}
	return &line, nil
}

// SaveBudgetLine inserts or replaces the approved amount for a combination,
// preserving accumulated committed and actual spend on conflict.
func (r *PgxBudgetRepository) SaveBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	query := `
		INSERT INTO budget_lines (
			budget_line_id, tenant_id, account_id, period_id, department_id,
			approved_amount, committed_amount, actual_amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, account_id, period_id, department_key)
		DO UPDATE SET approved_amount = EXCLUDED.approved_amount,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		line.BudgetLineID, line.TenantID, line.AccountID, line.PeriodID, line.DepartmentID,
		line.ApprovedAmount, line.CommittedAmount, line.ActualAmount,
		line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save budget line "+line.BudgetLineID, err)
	}
	return nil
}

// AddActual atomically accumulates posted spend onto the matching budget line.
// A missing line is a no-op.
func (r *PgxBudgetRepository) AddActual(ctx context.Context, tenantID string, accountID string, periodID string, departmentID *string, amount decimal.Decimal) error {
	query := `
		UPDATE budget_lines
		SET actual_amount = actual_amount + $5, last_updated_at = NOW()
		WHERE tenant_id = $1 AND account_id = $2 AND period_id = $3
		  AND department_id IS NOT DISTINCT FROM $4;
	`
	if _, err := r.Pool.Exec(ctx, query, tenantID, accountID, periodID, departmentID, amount); err != nil {
		return apperrors.NewAppError(500, "failed to add actuals for account "+accountID, err)
	}
	return nil
}
