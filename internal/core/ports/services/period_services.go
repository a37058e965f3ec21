package services

import (
	"context"
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/quartzerp/glcore/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting periods.
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a period.
	GetPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)

	// ResolveOpenPeriod finds the period covering the date if it is currently
	// postable. Returns (nil, nil) when no period covers the date or the covering
	// period is closed; the caller turns that into a BLOCKED outcome.
	ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// GetPeriodForDate finds the period covering the date regardless of status.
	// Returns ErrNotFound when no period covers it.
	GetPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// GetOpeningPeriod retrieves the tenant's designated opening-balance period.
	// Returns ErrNotFound when none is designated.
	GetOpeningPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error)

	// ListChecklist retrieves a period's close-readiness checklist.
	ListChecklist(ctx context.Context, tenantID string, periodID string) ([]domain.ChecklistItem, error)
}

// PeriodWriterSvc defines lifecycle operations for accounting periods.
type PeriodWriterSvc interface {
	// CreatePeriod creates a period with its seeded checklist.
	CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error)

	// ClosePeriod flips OPEN/REOPENED -> CLOSED; all checklist items must be
	// complete, and closing an already closed period is an error.
	ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string) (*domain.AccountingPeriod, error)

	// ReopenPeriod flips CLOSED -> REOPENED, recording the mandatory reason.
	ReopenPeriod(ctx context.Context, tenantID string, periodID string, req dto.ReopenPeriodRequest, userID string) (*domain.AccountingPeriod, error)

	// CompleteChecklistItem marks one checklist item done (append-only).
	CompleteChecklistItem(ctx context.Context, tenantID string, periodID string, itemID string, userID string) error
}

// PeriodSvcFacade combines all period service interfaces.
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
