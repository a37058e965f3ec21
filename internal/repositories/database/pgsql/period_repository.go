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

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `
	period_id, tenant_id, name, start_date, end_date, status, is_opening_period,
	closed_by, closed_at, reopen_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPeriod(row pgx.Row) (*domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	var reopenReason *string
	err := row.Scan(
		&p.PeriodID, &p.TenantID, &p.Name, &p.StartDate, &p.EndDate, &p.Status, &p.IsOpeningPeriod,
		&p.ClosedBy, &p.ClosedAt, &reopenReason,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reopenReason != nil {
		p.ReopenReason = *reopenReason
	}
	return &p, nil
}

// FindPeriodByID retrieves a period scoped to the tenant.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND period_id = $2;`

	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query period "+periodID, err)
	}
	return period, nil
}

// FindPeriodForDate retrieves the period whose [start,end] range covers the date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods
		WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2;`

	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query period for date", err)
	}
	return period, nil
}

// FindOpeningPeriod retrieves the tenant's designated opening-balance period.
func (r *PgxPeriodRepository) FindOpeningPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods
		WHERE tenant_id = $1 AND is_opening_period ORDER BY start_date LIMIT 1;`

	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query opening period", err)
	}
	return period, nil
}

// ListPeriods retrieves all periods for the tenant ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods", err)
	}
	defer rows.Close()

	var periods []domain.AccountingPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return periods, nil
}

// ListChecklistItems retrieves the close-readiness checklist for a period.
func (r *PgxPeriodRepository) ListChecklistItems(ctx context.Context, periodID string) ([]domain.ChecklistItem, error) {
	query := `
		SELECT item_id, period_id, name, completed, completed_by, completed_at
		FROM period_checklist_items
		WHERE period_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query checklist items", err)
	}
	defer rows.Close()

	var items []domain.ChecklistItem
	for rows.Next() {
		var item domain.ChecklistItem
		if err := rows.Scan(&item.ItemID, &item.PeriodID, &item.Name, &item.Completed, &item.CompletedBy, &item.CompletedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan checklist row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating checklist rows", err)
	}
	return items, nil
}

// SavePeriod inserts a period with its seeded checklist in one transaction.
// The exclusion constraint on overlapping ranges surfaces as ErrDuplicate.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod, checklist []domain.ChecklistItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	periodQuery := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var reopenReason *string
	if period.ReopenReason != "" {
		reopenReason = &period.ReopenReason
	}
	_, err = tx.Exec(ctx, periodQuery,
		period.PeriodID, period.TenantID, period.Name, period.StartDate, period.EndDate,
		period.Status, period.IsOpeningPeriod,
		period.ClosedBy, period.ClosedAt, reopenReason,
		period.CreatedAt, period.CreatedBy, period.LastUpdatedAt, period.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateOrOverlap(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert period "+period.PeriodID, err)
	}

	itemQuery := `
		INSERT INTO period_checklist_items (item_id, period_id, name, completed)
		VALUES ($1, $2, $3, FALSE);
	`
	batch := &pgx.Batch{}
	for _, item := range checklist {
		batch.Queue(itemQuery, item.ItemID, item.PeriodID, item.Name)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert checklist items for period "+period.PeriodID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdatePeriodStatus persists a status flip (close/reopen) with its stamps.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, period domain.AccountingPeriod) error {
	query := `
		UPDATE accounting_periods
		SET status = $3, closed_by = $4, closed_at = $5, reopen_reason = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND period_id = $2;
	`
	var reopenReason *string
	if period.ReopenReason != "" {
		reopenReason = &period.ReopenReason
	}
	tag, err := r.Pool.Exec(ctx, query,
		period.TenantID, period.PeriodID,
		period.Status, period.ClosedBy, period.ClosedAt, reopenReason,
		period.LastUpdatedAt, period.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period "+period.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CompleteChecklistItem marks an item complete. Completing an already complete
// item leaves the original completion stamp in place.
func (r *PgxPeriodRepository) CompleteChecklistItem(ctx context.Context, periodID string, itemID string, userID string, at time.Time) error {
	query := `
		UPDATE period_checklist_items
		SET completed = TRUE, completed_by = $3, completed_at = $4
		WHERE period_id = $1 AND item_id = $2 AND NOT completed;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, itemID, userID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete checklist item "+itemID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either already complete (a no-op) or missing; distinguish the two.
		var exists bool
		checkErr := r.Pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM period_checklist_items WHERE period_id = $1 AND item_id = $2);`,
			periodID, itemID,
		).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to check checklist item "+itemID, checkErr)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
	}
	return nil
}
