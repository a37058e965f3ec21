package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/dto"
	"github.com/quartzerp/glcore/internal/middleware"
)

// depreciationService runs the once-per-period straight-line depreciation batch.
type depreciationService struct {
	assetRepo  portsrepo.AssetRepositoryFacade
	periodSvc  portssvc.PeriodSvcFacade
	journalSvc portssvc.JournalSvcFacade
	sodSvc     portssvc.SoDSvcFacade
	audit      portssvc.AuditRecorderSvc
}

// NewDepreciationService creates the depreciation run engine.
func NewDepreciationService(
	assetRepo portsrepo.AssetRepositoryFacade,
	periodSvc portssvc.PeriodSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	sodSvc portssvc.SoDSvcFacade,
	audit portssvc.AuditRecorderSvc,
) portssvc.DepreciationSvcFacade {
	return &depreciationService{
		assetRepo:  assetRepo,
		periodSvc:  periodSvc,
		journalSvc: journalSvc,
		sodSvc:     sodSvc,
		audit:      audit,
	}
}

var _ portssvc.DepreciationSvcFacade = (*depreciationService)(nil)

// RunForPeriod computes straight-line depreciation for every asset already
// CAPITALIZED when the period starts, reserves the run under the
// (tenant, period) unique constraint, then drives one consolidated SYSTEM
// journal through the full maker/checker lifecycle. The run is attached to
// the journal inside the posting transaction. A concurrent or repeated run
// loses the constraint race and fails with ErrAlreadyRun before any journal
// exists.
func (s *depreciationService) RunForPeriod(ctx context.Context, tenantID string, periodID string, actorUserID string) (*domain.DepreciationRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodSvc.GetPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if !period.IsOpenForPosting() {
		s.recordRunEvent(ctx, tenantID, periodID, domain.OutcomeBlocked, "period is not open for posting", actorUserID)
		return nil, fmt.Errorf("%w: period %s is not open for posting", apperrors.ErrPeriodLocked, periodID)
	}

	// Assets capitalized mid-period wait for the next run.
	assets, err := s.assetRepo.ListDepreciableAssets(ctx, tenantID, period.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciable assets: %w", err)
	}

	runID := uuid.NewString()
	total := decimal.Zero
	var runLines []domain.DepreciationLine
	for _, asset := range assets {
		amount := asset.MonthlyDepreciation()
		if amount.IsZero() {
			continue
		}
		runLines = append(runLines, domain.DepreciationLine{
			LineID:           uuid.NewString(),
			RunID:            runID,
			AssetID:          asset.AssetID,
			ExpenseAccountID: asset.DepreciationExpenseID,
			AccumAccountID:   asset.AccumDepreciationAcctID,
			Amount:           amount,
		})
		total = total.Add(amount)
	}

	run := domain.DepreciationRun{
		RunID:       runID,
		TenantID:    tenantID,
		PeriodID:    periodID,
		TotalAmount: total,
		RunBy:       actorUserID,
		RunAt:       time.Now().UTC(),
		Lines:       runLines,
	}

	// Reserving the run first makes the unique constraint the concurrency
	// guard: only the reservation winner proceeds to create a journal.
	if err := s.assetRepo.CreateRun(ctx, run); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyRun) {
			s.recordRunEvent(ctx, tenantID, periodID, domain.OutcomeBlocked, "depreciation already run for period", actorUserID)
		}
		return nil, err
	}

	if len(runLines) == 0 {
		s.recordRunEvent(ctx, tenantID, periodID, domain.OutcomeSuccess, "no depreciable assets", actorUserID)
		logger.Info("Depreciation run completed with no charges", slog.String("period_id", periodID))
		return &run, nil
	}

	journal, err := s.postRunJournal(ctx, tenantID, *period, run, actorUserID)
	if err != nil {
		logger.Error("Failed to post depreciation journal", slog.String("error", err.Error()), slog.String("run_id", runID))
		// Release the reservation so a corrected retry does not hit ErrAlreadyRun.
		if delErr := s.assetRepo.DeleteRun(ctx, runID); delErr != nil {
			logger.Error("Failed to release depreciation run reservation", slog.String("error", delErr.Error()), slog.String("run_id", runID))
		}
		s.recordRunEvent(ctx, tenantID, periodID, domain.OutcomeFailed, "consolidated journal could not be posted", actorUserID)
		return nil, err
	}
	run.JournalID = &journal.JournalID

	s.recordRunEvent(ctx, tenantID, periodID, domain.OutcomeSuccess, "", actorUserID)
	logger.Info("Depreciation run posted",
		slog.String("run_id", runID),
		slog.String("journal_id", journal.JournalID),
		slog.String("total", total.String()),
	)
	return &run, nil
}

// postRunJournal consolidates the run lines by account, then drives the
// SYSTEM journal through create (as a distinct preparer), submit, review and
// post, keeping the maker/checker separation intact for machine entries. The
// final step posts through PostJournalForRun so the run attachment commits
// with the posting itself.
func (s *depreciationService) postRunJournal(ctx context.Context, tenantID string, period domain.AccountingPeriod, run domain.DepreciationRun, actorUserID string) (*domain.JournalEntry, error) {
	preparer, err := s.sodSvc.FindPreparer(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for _, line := range run.Lines {
		debits[line.ExpenseAccountID] = debits[line.ExpenseAccountID].Add(line.Amount)
		credits[line.AccumAccountID] = credits[line.AccumAccountID].Add(line.Amount)
	}

	lines := make([]dto.JournalLineRequest, 0, len(debits)+len(credits))
	for _, accountID := range sortedKeys(debits) {
		lines = append(lines, dto.JournalLineRequest{
			AccountID: accountID,
			Debit:     debits[accountID],
			Memo:      "Monthly depreciation charge",
		})
	}
	for _, accountID := range sortedKeys(credits) {
		lines = append(lines, dto.JournalLineRequest{
			AccountID: accountID,
			Credit:    credits[accountID],
			Memo:      "Accumulated depreciation",
		})
	}

	req := dto.CreateJournalRequest{
		Date:        period.EndDate,
		Description: fmt.Sprintf("Depreciation for period %s", period.Name),
		Source:      domain.SourceSystem,
		Lines:       lines,
	}

	journal, err := s.journalSvc.CreateJournal(ctx, tenantID, req, preparer.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create depreciation journal: %w", err)
	}
	if _, err := s.journalSvc.SubmitJournal(ctx, tenantID, journal.JournalID, preparer.UserID); err != nil {
		return nil, fmt.Errorf("failed to submit depreciation journal: %w", err)
	}
	if _, err := s.journalSvc.ReviewJournal(ctx, tenantID, journal.JournalID, dto.ReviewJournalRequest{}, actorUserID); err != nil {
		return nil, fmt.Errorf("failed to review depreciation journal: %w", err)
	}
	posted, err := s.journalSvc.PostJournalForRun(ctx, tenantID, journal.JournalID, run.RunID, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to post depreciation journal: %w", err)
	}
	return posted, nil
}

// GetRunForPeriod retrieves the run with its lines, if one exists.
func (s *depreciationService) GetRunForPeriod(ctx context.Context, tenantID string, periodID string) (*domain.DepreciationRun, error) {
	run, err := s.assetRepo.FindRunByPeriod(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	lines, err := s.assetRepo.FindRunLines(ctx, run.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run lines: %w", err)
	}
	run.Lines = lines
	return run, nil
}

func (s *depreciationService) recordRunEvent(ctx context.Context, tenantID, periodID string, outcome domain.AuditOutcome, reason, actorID string) {
	s.audit.Record(ctx, domain.AuditEvent{
		TenantID:   tenantID,
		EventType:  "DEPRECIATION",
		EntityType: "depreciation_run",
		EntityID:   periodID,
		Action:     "RUN_DEPRECIATION",
		Outcome:    outcome,
		Reason:     reason,
		ActorID:    actorID,
	})
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
