package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/dto"
	"github.com/quartzerp/glcore/internal/middleware"
)

var (
	// ErrChecklistIncomplete blocks closing a period before every checklist item is done.
	ErrChecklistIncomplete = fmt.Errorf("%w: close checklist is not complete", apperrors.ErrValidation)

	// ErrPeriodDates rejects a period whose start date falls after its end date.
	ErrPeriodDates = fmt.Errorf("%w: period start date must not be after end date", apperrors.ErrValidation)
)

// defaultChecklistItems seeds the close-readiness checklist when the caller
// does not supply a tenant-specific set.
var defaultChecklistItems = []string{
	"Bank reconciliations complete",
	"Subledgers closed",
	"Depreciation posted",
	"Accruals and prepayments reviewed",
	"Intercompany balances agreed",
}

// periodService owns the accounting-period lifecycle and the posting gate.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	audit      portssvc.AuditRecorderSvc
}

// NewPeriodService creates a new PeriodController.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo, audit: audit}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod creates a period and seeds its close checklist. Overlapping
// ranges are rejected by the repository's constraint as ErrDuplicate.
func (s *periodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.StartDate.After(req.EndDate) {
		return nil, ErrPeriodDates
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:        uuid.NewString(),
		TenantID:        tenantID,
		Name:            req.Name,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          domain.PeriodOpen,
		IsOpeningPeriod: req.IsOpeningPeriod,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	names := req.ChecklistItems
	if len(names) == 0 {
		names = defaultChecklistItems
	}
	checklist := make([]domain.ChecklistItem, len(names))
	for i, name := range names {
		checklist[i] = domain.ChecklistItem{
			ItemID:   uuid.NewString(),
			PeriodID: period.PeriodID,
			Name:     name,
		}
	}

	if err := s.periodRepo.SavePeriod(ctx, period, checklist); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// GetPeriodByID retrieves a period.
func (s *periodService) GetPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
}

// ListPeriods retrieves all periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, tenantID)
}

// GetPeriodForDate finds the period covering the date regardless of status.
func (s *periodService) GetPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodForDate(ctx, tenantID, date)
}

// GetOpeningPeriod retrieves the tenant's designated opening-balance period.
func (s *periodService) GetOpeningPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindOpeningPeriod(ctx, tenantID)
}

// ResolveOpenPeriod finds the period covering the date if it currently accepts
// postings. Returns (nil, nil) when none does; the caller raises the BLOCKED
// outcome with full context.
func (s *periodService) ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !period.IsOpenForPosting() {
		return nil, nil
	}
	return period, nil
}

// ListChecklist retrieves the close-readiness checklist for a period.
func (s *periodService) ListChecklist(ctx context.Context, tenantID string, periodID string) ([]domain.ChecklistItem, error) {
	if _, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID); err != nil {
		return nil, err
	}
	return s.periodRepo.ListChecklistItems(ctx, periodID)
}

// CompleteChecklistItem marks a checklist item done. Completion is append-only;
// completed items can never be un-completed.
func (s *periodService) CompleteChecklistItem(ctx context.Context, tenantID string, periodID string, itemID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID); err != nil {
		return err
	}
	if err := s.periodRepo.CompleteChecklistItem(ctx, periodID, itemID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to complete checklist item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return err
	}
	logger.Info("Checklist item completed", slog.String("period_id", periodID), slog.String("item_id", itemID))
	return nil
}

// ClosePeriod flips OPEN/REOPENED to CLOSED once every checklist item is done.
// Closing an already closed period is an error, not a no-op.
func (s *periodService) ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}

	if period.Status == domain.PeriodClosed {
		s.recordPeriodEvent(ctx, tenantID, periodID, "CLOSE_PERIOD", domain.OutcomeBlocked, "period already closed", userID)
		return nil, fmt.Errorf("%w: period %s is already closed", apperrors.ErrInvalidState, periodID)
	}

	checklist, err := s.periodRepo.ListChecklistItems(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checklist: %w", err)
	}
	for _, item := range checklist {
		if !item.Completed {
			s.recordPeriodEvent(ctx, tenantID, periodID, "CLOSE_PERIOD", domain.OutcomeBlocked, "checklist item pending: "+item.Name, userID)
			return nil, ErrChecklistIncomplete
		}
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodClosed
	period.ClosedBy = &userID
	period.ClosedAt = &now
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	if err := s.periodRepo.UpdatePeriodStatus(ctx, *period); err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close period: %w", err)
	}

	s.recordPeriodEvent(ctx, tenantID, periodID, "CLOSE_PERIOD", domain.OutcomeSuccess, "", userID)
	logger.Info("Period closed", slog.String("period_id", periodID), slog.String("tenant_id", tenantID))
	return period, nil
}

// ReopenPeriod flips CLOSED to REOPENED, recording the mandatory reason.
func (s *periodService) ReopenPeriod(ctx context.Context, tenantID string, periodID string, req dto.ReopenPeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reopen reason is required", apperrors.ErrValidation)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}

	if period.Status != domain.PeriodClosed {
		s.recordPeriodEvent(ctx, tenantID, periodID, "REOPEN_PERIOD", domain.OutcomeBlocked, "period is not closed", userID)
		return nil, fmt.Errorf("%w: only a closed period can be reopened", apperrors.ErrInvalidState)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodReopened
	period.ReopenReason = req.Reason
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	if err := s.periodRepo.UpdatePeriodStatus(ctx, *period); err != nil {
		logger.Error("Failed to reopen period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to reopen period: %w", err)
	}

	s.recordPeriodEvent(ctx, tenantID, periodID, "REOPEN_PERIOD", domain.OutcomeSuccess, req.Reason, userID)
	logger.Info("Period reopened", slog.String("period_id", periodID), slog.String("reason", req.Reason))
	return period, nil
}

func (s *periodService) recordPeriodEvent(ctx context.Context, tenantID, periodID, action string, outcome domain.AuditOutcome, reason, actorID string) {
	s.audit.Record(ctx, domain.AuditEvent{
		TenantID:   tenantID,
		EventType:  "PERIOD",
		EntityType: "accounting_period",
		EntityID:   periodID,
		Action:     action,
		Outcome:    outcome,
		Reason:     reason,
		ActorID:    actorID,
	})
}
