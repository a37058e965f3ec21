package repositories

import (
	"context"
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods.
type PeriodReader interface {
	// FindPeriodByID retrieves a period scoped to the tenant.
	FindPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodForDate retrieves the period whose [start,end] range covers the date.
	// Returns ErrNotFound when no period covers it.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// FindOpeningPeriod retrieves the tenant's designated opening-balance period.
	FindOpeningPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods for the tenant ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)

	// ListChecklistItems retrieves the close-readiness checklist for a period.
	ListChecklistItems(ctx context.Context, periodID string) ([]domain.ChecklistItem, error)
}

// PeriodWriter defines write operations for accounting periods.
type PeriodWriter interface {
	// SavePeriod inserts a period with its seeded checklist in one transaction.
	// An overlapping date range yields ErrDuplicate.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod, checklist []domain.ChecklistItem) error

	// UpdatePeriodStatus persists a status flip (close/reopen) with its stamps.
	UpdatePeriodStatus(ctx context.Context, period domain.AccountingPeriod) error

	// CompleteChecklistItem marks an item complete. Completion is append-only;
	// completing an already complete item is a no-op.
	CompleteChecklistItem(ctx context.Context, periodID string, itemID string, userID string, at time.Time) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
