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

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for fixed assets and depreciation runs.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `
	asset_id, tenant_id, category_id, name, cost, residual_value, useful_life_months,
	method, status, asset_account_id, accum_depreciation_acct_id, depreciation_expense_id,
	capitalized_at, disposed_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAsset(row pgx.Row) (*domain.FixedAsset, error) {
	var a domain.FixedAsset
	var assetAcct, accumAcct, expenseAcct *string
	err := row.Scan(
		&a.AssetID, &a.TenantID, &a.CategoryID, &a.Name, &a.Cost, &a.ResidualValue, &a.UsefulLifeMonths,
		&a.Method, &a.Status, &assetAcct, &accumAcct, &expenseAcct,
		&a.CapitalizedAt, &a.DisposedAt,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if assetAcct != nil {
		a.AssetAccountID = *assetAcct
	}
	if accumAcct != nil {
		a.AccumDepreciationAcctID = *accumAcct
	}
	if expenseAcct != nil {
		a.DepreciationExpenseID = *expenseAcct
	}
	return &a, nil
}

func assetArgs(a domain.FixedAsset) []any {
	var assetAcct, accumAcct, expenseAcct *string
	if a.AssetAccountID != "" {
		assetAcct = &a.AssetAccountID
	}
	if a.AccumDepreciationAcctID != "" {
		accumAcct = &a.AccumDepreciationAcctID
	}
	if a.DepreciationExpenseID != "" {
		expenseAcct = &a.DepreciationExpenseID
	}
	return []any{
		a.AssetID, a.TenantID, a.CategoryID, a.Name, a.Cost, a.ResidualValue, a.UsefulLifeMonths,
		a.Method, a.Status, assetAcct, accumAcct, expenseAcct,
		a.CapitalizedAt, a.DisposedAt,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	}
}

// FindAssetByID retrieves an asset scoped to the tenant.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE tenant_id = $1 AND asset_id = $2;`

	asset, err := scanAsset(r.Pool.QueryRow(ctx, query, tenantID, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query asset "+assetID, err)
	}
	return asset, nil
}

// FindCategoryByID retrieves an asset category scoped to the tenant.
func (r *PgxAssetRepository) FindCategoryByID(ctx context.Context, tenantID string, categoryID string) (*domain.FixedAssetCategory, error) {
	query := `
		SELECT category_id, tenant_id, name, asset_account_id, accum_depreciation_acct_id, depreciation_expense_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fixed_asset_categories
		WHERE tenant_id = $1 AND category_id = $2;
	`
	var c domain.FixedAssetCategory
	err := r.Pool.QueryRow(ctx, query, tenantID, categoryID).Scan(
		&c.CategoryID, &c.TenantID, &c.Name, &c.AssetAccountID, &c.AccumDepreciationAcctID, &c.DepreciationExpenseID,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query asset category "+categoryID, err)
	}
	return &c, nil
}

// ListDepreciableAssets retrieves CAPITALIZED assets whose capitalization date
// is on or before the cutoff, ordered by asset ID for deterministic runs.
func (r *PgxAssetRepository) ListDepreciableAssets(ctx context.Context, tenantID string, cutoff time.Time) ([]domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets
		WHERE tenant_id = $1 AND status = $2 AND capitalized_at <= $3
		ORDER BY asset_id;`

	rows, err := r.Pool.Query(ctx, query, tenantID, domain.AssetCapitalized, cutoff)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query depreciable assets", err)
	}
	defer rows.Close()

	var assets []domain.FixedAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset row", err)
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset rows", err)
	}
	return assets, nil
}

// FindRunByPeriod retrieves the depreciation run for a (tenant, period), if any.
func (r *PgxAssetRepository) FindRunByPeriod(ctx context.Context, tenantID string, periodID string) (*domain.DepreciationRun, error) {
	query := `
		SELECT run_id, tenant_id, period_id, journal_id, total_amount, run_by, run_at
		FROM depreciation_runs
		WHERE tenant_id = $1 AND period_id = $2;
	`
	var run domain.DepreciationRun
	err := r.Pool.QueryRow(ctx, query, tenantID, periodID).Scan(
		&run.RunID, &run.TenantID, &run.PeriodID, &run.JournalID, &run.TotalAmount, &run.RunBy, &run.RunAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query depreciation run for period "+periodID, err)
	}
	return &run, nil
}

// FindRunLines retrieves the per-asset lines of a run.
func (r *PgxAssetRepository) FindRunLines(ctx context.Context, runID string) ([]domain.DepreciationLine, error) {
	query := `
		SELECT line_id, run_id, asset_id, expense_account_id, accum_account_id, amount
		FROM depreciation_run_lines
		WHERE run_id = $1
		ORDER BY asset_id;
	`
	rows, err := r.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query run lines for run "+runID, err)
	}
	defer rows.Close()

	var lines []domain.DepreciationLine
	for rows.Next() {
		var l domain.DepreciationLine
		if err := rows.Scan(&l.LineID, &l.RunID, &l.AssetID, &l.ExpenseAccountID, &l.AccumAccountID, &l.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan run line row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating run line rows", err)
	}
	return lines, nil
}

// SaveAsset inserts a new asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	query := `
		INSERT INTO fixed_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	if _, err := r.Pool.Exec(ctx, query, assetArgs(asset)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert asset "+asset.AssetID, err)
	}
	return nil
}

// UpdateAsset persists lifecycle changes (capitalization, disposal).
func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.FixedAsset) error {
	query := `
		UPDATE fixed_assets
		SET status = $3, asset_account_id = $4, accum_depreciation_acct_id = $5, depreciation_expense_id = $6,
		    capitalized_at = $7, disposed_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE tenant_id = $1 AND asset_id = $2;
	`
	args := assetArgs(asset)
	tag, err := r.Pool.Exec(ctx, query,
		asset.TenantID, asset.AssetID,
		asset.Status, args[9], args[10], args[11],
		asset.CapitalizedAt, asset.DisposedAt, asset.LastUpdatedAt, asset.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update asset "+asset.AssetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveCategory inserts a new asset category.
func (r *PgxAssetRepository) SaveCategory(ctx context.Context, category domain.FixedAssetCategory) error {
	query := `
		INSERT INTO fixed_asset_categories (
			category_id, tenant_id, name, asset_account_id, accum_depreciation_acct_id, depreciation_expense_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.TenantID, category.Name,
		category.AssetAccountID, category.AccumDepreciationAcctID, category.DepreciationExpenseID,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert asset category "+category.CategoryID, err)
	}
	return nil
}

// CreateRun inserts a run and its lines in one transaction. The unique
// (tenant, period) constraint is the run-once guard.
func (r *PgxAssetRepository) CreateRun(ctx context.Context, run domain.DepreciationRun) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	runQuery := `
		INSERT INTO depreciation_runs (run_id, tenant_id, period_id, journal_id, total_amount, run_by, run_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, runQuery,
		run.RunID, run.TenantID, run.PeriodID, run.JournalID, run.TotalAmount, run.RunBy, run.RunAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrAlreadyRun
		}
		return apperrors.NewAppError(500, "failed to insert depreciation run "+run.RunID, err)
	}

	lineQuery := `
		INSERT INTO depreciation_run_lines (line_id, run_id, asset_id, expense_account_id, accum_account_id, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, l := range run.Lines {
		batch.Queue(lineQuery, l.LineID, l.RunID, l.AssetID, l.ExpenseAccountID, l.AccumAccountID, l.Amount)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert run lines for run "+run.RunID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteRun removes a reserved run and its lines, releasing the
// (tenant, period) reservation after a failed journal pipeline.
func (r *PgxAssetRepository) DeleteRun(ctx context.Context, runID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM depreciation_run_lines WHERE run_id = $1;`, runID); err != nil {
		return apperrors.NewAppError(500, "failed to delete run lines for run "+runID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM depreciation_runs WHERE run_id = $1;`, runID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete depreciation run "+runID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
