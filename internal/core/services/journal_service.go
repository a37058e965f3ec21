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
	"github.com/quartzerp/glcore/internal/utils/accounting"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotPostable = fmt.Errorf("%w: account does not accept postings", apperrors.ErrValidation)
	ErrDimensionRequired  = fmt.Errorf("%w: required dimension missing on line", apperrors.ErrValidation)
	ErrDimensionForbidden = fmt.Errorf("%w: forbidden dimension supplied on line", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	ErrBudgetBlocked      = fmt.Errorf("%w: budget impact is BLOCK and no override justification was given", apperrors.ErrConflict)
	ErrReverseReversal    = fmt.Errorf("%w: cannot reverse a journal that is itself a reversal", apperrors.ErrConflict)
)

// journalService owns the journal-entry lifecycle and its balance invariants.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	periodSvc   portssvc.PeriodSvcFacade
	riskSvc     portssvc.RiskScorerSvc
	budgetSvc   portssvc.BudgetSvcFacade
	audit       portssvc.AuditRecorderSvc
}

// NewJournalService creates the journal state machine.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	riskSvc portssvc.RiskScorerSvc,
	budgetSvc portssvc.BudgetSvcFacade,
	audit portssvc.AuditRecorderSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		periodSvc:   periodSvc,
		riskSvc:     riskSvc,
		budgetSvc:   budgetSvc,
		audit:       audit,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts inbound line payloads into domain lines.
func buildLines(reqLines []dto.JournalLineRequest, journalID, userID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			JournalID:     journalID,
			AccountID:     lr.AccountID,
			LegalEntityID: lr.LegalEntityID,
			DepartmentID:  lr.DepartmentID,
			ProjectID:     lr.ProjectID,
			FundID:        lr.FundID,
			Debit:         lr.Debit,
			Credit:        lr.Credit,
			Memo:          lr.Memo,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// checkDimension validates one dimension value against the account's requirement flag.
func checkDimension(req domain.DimensionRequirement, value *string, accountID, dimension string) error {
	switch req {
	case domain.DimensionRequired:
		if value == nil || *value == "" {
			return fmt.Errorf("%w: %s on account %s", ErrDimensionRequired, dimension, accountID)
		}
	case domain.DimensionForbidden:
		if value != nil && *value != "" {
			return fmt.Errorf("%w: %s on account %s", ErrDimensionForbidden, dimension, accountID)
		}
	}
	return nil
}

// validateLines enforces the full set of line invariants: balance, per-line
// debit/credit shape, account existence and postability, and dimension
// requirements. It returns the referenced accounts for reuse by the caller.
func (s *journalService) validateLines(ctx context.Context, tenantID string, lines []domain.JournalLine) (map[string]domain.Account, error) {
	if err := accounting.ValidateBalanced(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		acc, found := accounts[line.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, line.AccountID)
		}
		if !acc.AcceptsPostings() {
			return nil, fmt.Errorf("%w: account %s", ErrAccountNotPostable, line.AccountID)
		}
		if err := checkDimension(acc.DepartmentReq, line.DepartmentID, acc.AccountID, "department"); err != nil {
			return nil, err
		}
		if err := checkDimension(acc.ProjectReq, line.ProjectID, acc.AccountID, "project"); err != nil {
			return nil, err
		}
		if err := checkDimension(acc.FundReq, line.FundID, acc.AccountID, "fund"); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

// getJournalWithLines fetches a journal header and its lines, scoped to the tenant.
func (s *journalService) getJournalWithLines(ctx context.Context, tenantID, journalID string) (*domain.JournalEntry, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

func (s *journalService) recordJournalEvent(ctx context.Context, tenantID, journalID, action string, outcome domain.AuditOutcome, reason, actorID, permissionUsed string) {
	s.audit.Record(ctx, domain.AuditEvent{
		TenantID:       tenantID,
		EventType:      "JOURNAL",
		EntityType:     "journal_entry",
		EntityID:       journalID,
		Action:         action,
		Outcome:        outcome,
		Reason:         reason,
		ActorID:        actorID,
		PermissionUsed: permissionUsed,
	})
}

// CreateJournal validates and persists a new DRAFT journal entry.
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}
	if source == domain.SourceOpening {
		return nil, fmt.Errorf("%w: opening journals are managed via the opening-balance operation", apperrors.ErrValidation)
	}

	if req.CorrectsJournalID != nil {
		if _, err := s.journalRepo.FindJournalByID(ctx, tenantID, *req.CorrectsJournalID); err != nil {
			return nil, fmt.Errorf("corrected journal lookup failed: %w", err)
		}
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	lines := buildLines(req.Lines, journalID, creatorUserID, now)

	if _, err := s.validateLines(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	journal := domain.JournalEntry{
		JournalID:         journalID,
		TenantID:          tenantID,
		JournalDate:       req.Date,
		Description:       req.Description,
		Status:            domain.Draft,
		Source:            source,
		CorrectsJournalID: req.CorrectsJournalID,
		Lines:             lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "CREATE_JOURNAL", domain.OutcomeSuccess, "", creatorUserID, domain.PermJournalCreate)
	logger.Info("Journal created", slog.String("journal_id", journalID), slog.String("tenant_id", tenantID))
	return &journal, nil
}

// UpdateJournal replaces a DRAFT journal's content, re-validating as on create.
func (s *journalService) UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s is %s, only DRAFT entries can be updated", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	now := time.Now().UTC()
	lines := buildLines(req.Lines, journalID, userID, now)
	if _, err := s.validateLines(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	journal.JournalDate = req.Date
	journal.Description = req.Description
	journal.Lines = lines
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.ReplaceJournal(ctx, *journal); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}

	logger.Info("Journal updated", slog.String("journal_id", journalID))
	return journal, nil
}

// SubmitJournal transitions DRAFT -> SUBMITTED, re-checking the balance invariant.
func (s *journalService) SubmitJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.getJournalWithLines(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s is %s, expected DRAFT", apperrors.ErrInvalidState, journalID, journal.Status)
	}
	if err := accounting.ValidateBalanced(journal.Lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	journal.Status = domain.Submitted
	journal.SubmittedBy = &userID
	journal.SubmittedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalStatus(ctx, *journal); err != nil {
		logger.Error("Failed to submit journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to submit journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "SUBMIT_JOURNAL", domain.OutcomeSuccess, "", userID, domain.PermJournalCreate)
	logger.Info("Journal submitted", slog.String("journal_id", journalID))
	return journal, nil
}

// ReviewJournal transitions SUBMITTED -> REVIEWED. The risk score and budget
// impact are computed here, against the entry as finally prepared and against
// current budget state, never cached from submit time.
func (s *journalService) ReviewJournal(ctx context.Context, tenantID string, journalID string, req dto.ReviewJournalRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.getJournalWithLines(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Submitted {
		return nil, fmt.Errorf("%w: journal %s is %s, expected SUBMITTED", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	accounts, err := s.validateLines(ctx, tenantID, journal.Lines)
	if err != nil {
		return nil, err
	}

	period, err := s.periodSvc.GetPeriodForDate(ctx, tenantID, journal.JournalDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve period for review: %w", err)
	}

	budgetStatus := domain.BudgetOK
	var budgetFlags []string
	if period != nil {
		budgetStatus, budgetFlags, err = s.budgetSvc.EvaluateJournal(ctx, tenantID, *journal, *period)
		if err != nil {
			return nil, fmt.Errorf("budget evaluation failed: %w", err)
		}
	}

	if budgetStatus == domain.BudgetBlock {
		if req.OverrideReason == nil || *req.OverrideReason == "" {
			s.recordJournalEvent(ctx, tenantID, journalID, "REVIEW_JOURNAL", domain.OutcomeBlocked, "budget impact BLOCK without override", userID, domain.PermJournalApprove)
			return nil, ErrBudgetBlocked
		}
		journal.OverrideReason = *req.OverrideReason
	}

	periodEnd := time.Time{}
	if period != nil {
		periodEnd = period.EndDate
	}
	assessment := s.riskSvc.Score(portssvc.RiskInput{
		Journal:   *journal,
		Amount:    accounting.JournalAmount(journal.Lines),
		Accounts:  accounts,
		PeriodEnd: periodEnd,
		Now:       time.Now().UTC(),
	})

	now := time.Now().UTC()
	journal.Status = domain.Reviewed
	journal.RiskScore = assessment.Score
	journal.RiskFlags = assessment.Flags
	journal.BudgetStatus = budgetStatus
	journal.BudgetFlags = budgetFlags
	journal.ReviewedBy = &userID
	journal.ReviewedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalStatus(ctx, *journal); err != nil {
		logger.Error("Failed to review journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to review journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "REVIEW_JOURNAL", domain.OutcomeSuccess, "", userID, domain.PermJournalApprove)
	logger.Info("Journal reviewed",
		slog.String("journal_id", journalID),
		slog.Int("risk_score", assessment.Score),
		slog.String("risk_band", string(assessment.Band)),
		slog.String("budget_status", string(budgetStatus)),
	)
	return journal, nil
}

// RejectJournal transitions SUBMITTED -> REJECTED. REJECTED is terminal.
func (s *journalService) RejectJournal(ctx context.Context, tenantID string, journalID string, req dto.RejectJournalRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Submitted {
		return nil, fmt.Errorf("%w: journal %s is %s, expected SUBMITTED", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	now := time.Now().UTC()
	journal.Status = domain.Rejected
	journal.RejectedBy = &userID
	journal.RejectedAt = &now
	journal.RejectionReason = req.Reason
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalStatus(ctx, *journal); err != nil {
		logger.Error("Failed to reject journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to reject journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "REJECT_JOURNAL", domain.OutcomeSuccess, req.Reason, userID, domain.PermJournalApprove)
	logger.Info("Journal rejected", slog.String("journal_id", journalID), slog.String("reason", req.Reason))
	return journal, nil
}

// ParkJournal transitions REVIEWED -> PARKED.
func (s *journalService) ParkJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Reviewed {
		return nil, fmt.Errorf("%w: journal %s is %s, expected REVIEWED", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	now := time.Now().UTC()
	journal.Status = domain.Parked
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalStatus(ctx, *journal); err != nil {
		logger.Error("Failed to park journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to park journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "PARK_JOURNAL", domain.OutcomeSuccess, "", userID, domain.PermJournalApprove)
	logger.Info("Journal parked", slog.String("journal_id", journalID))
	return journal, nil
}

// ReturnToReview transitions REVIEWED or PARKED back to SUBMITTED so the entry
// re-enters the checker queue.
func (s *journalService) ReturnToReview(ctx context.Context, tenantID string, journalID string, req dto.ReturnJournalRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: return reason is required", apperrors.ErrValidation)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Reviewed && journal.Status != domain.Parked {
		return nil, fmt.Errorf("%w: journal %s is %s, expected REVIEWED or PARKED", apperrors.ErrInvalidState, journalID, journal.Status)
	}

	now := time.Now().UTC()
	journal.Status = domain.Submitted
	journal.ReturnedBy = &userID
	journal.ReturnedAt = &now
	journal.ReturnReason = req.Reason
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalStatus(ctx, *journal); err != nil {
		logger.Error("Failed to return journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to return journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "RETURN_TO_REVIEW", domain.OutcomeSuccess, req.Reason, userID, domain.PermJournalApprove)
	logger.Info("Journal returned to review", slog.String("journal_id", journalID))
	return journal, nil
}

// PostJournal transitions REVIEWED -> POSTED. The balance is re-validated, the
// covering period must be open, and the journal number is allocated from the
// tenant-scoped sequence inside the posting transaction. A period that is
// missing or closed produces a BLOCKED audit event before the error surfaces.
func (s *journalService) PostJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error) {
	return s.postJournal(ctx, tenantID, journalID, nil, userID)
}

// PostJournalForRun posts like PostJournal and attaches the posted journal to
// the given depreciation run in the same transaction, so a run can never end
// up pointing at a journal that was not posted, nor the reverse.
func (s *journalService) PostJournalForRun(ctx context.Context, tenantID string, journalID string, runID string, userID string) (*domain.JournalEntry, error) {
	return s.postJournal(ctx, tenantID, journalID, &runID, userID)
}

func (s *journalService) postJournal(ctx context.Context, tenantID string, journalID string, runID *string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.getJournalWithLines(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Reviewed {
		return nil, fmt.Errorf("%w: journal %s is %s, expected REVIEWED", apperrors.ErrInvalidState, journalID, journal.Status)
	}
	if err := accounting.ValidateBalanced(journal.Lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	period, err := s.periodSvc.ResolveOpenPeriod(ctx, tenantID, journal.JournalDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve posting period: %w", err)
	}
	if period == nil {
		reason := fmt.Sprintf("no open period covers %s", journal.JournalDate.Format("2006-01-02"))
		s.recordJournalEvent(ctx, tenantID, journalID, "POST_JOURNAL", domain.OutcomeBlocked, reason, userID, domain.PermJournalPost)
		logger.Warn("Posting blocked by period state", slog.String("journal_id", journalID), slog.String("journal_date", journal.JournalDate.Format("2006-01-02")))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodLocked, reason)
	}

	now := time.Now().UTC()
	journal.Status = domain.Posted
	journal.PostedBy = &userID
	journal.PostedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = userID

	number, err := s.journalRepo.PostJournal(ctx, *journal, runID)
	if err != nil {
		logger.Error("Failed to post journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to post journal: %w", err)
	}
	journal.JournalNumber = &number

	// Budget actuals are derived bookkeeping; a failure here is logged but does
	// not unwind the completed posting.
	if err := s.budgetSvc.RecordActuals(ctx, tenantID, *journal, *period); err != nil {
		logger.Error("Failed to record budget actuals after post", slog.String("error", err.Error()), slog.String("journal_id", journalID))
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "POST_JOURNAL", domain.OutcomeSuccess, "", userID, domain.PermJournalPost)
	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.Int64("journal_number", number))
	return journal, nil
}

// ReverseJournal builds a new DRAFT journal that mirrors a POSTED journal with
// debit and credit swapped on every line. The original is never mutated and the
// reversal is never auto-posted.
func (s *journalService) ReverseJournal(ctx context.Context, tenantID string, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.getJournalWithLines(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s is %s, only POSTED entries can be reversed", apperrors.ErrInvalidState, journalID, original.Status)
	}
	if original.ReversalOfID != nil {
		return nil, ErrReverseReversal
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	mirrored := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		mirrored[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			JournalID:     reversalID,
			AccountID:     line.AccountID,
			LegalEntityID: line.LegalEntityID,
			DepartmentID:  line.DepartmentID,
			ProjectID:     line.ProjectID,
			FundID:        line.FundID,
			Debit:         line.Credit,
			Credit:        line.Debit,
			Memo:          line.Memo,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	reversal := domain.JournalEntry{
		JournalID:    reversalID,
		TenantID:     tenantID,
		JournalDate:  original.JournalDate,
		Description:  fmt.Sprintf("Reversal of journal %s: %s", journalID, req.Reason),
		Status:       domain.Draft,
		Source:       original.Source,
		ReversalOfID: &journalID,
		Lines:        mirrored,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, reversal); err != nil {
		logger.Error("Failed to save reversal journal", slog.String("error", err.Error()), slog.String("original_journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversal journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, reversalID, "REVERSE_JOURNAL", domain.OutcomeSuccess, req.Reason, userID, domain.PermJournalCreate)
	logger.Info("Reversal journal drafted", slog.String("journal_id", reversalID), slog.String("reverses", journalID))
	return &reversal, nil
}

// UpsertOpeningJournal creates or replaces the tenant's single opening-balance
// journal, dated into the designated opening period. Once any non-opening
// posting has landed on or after the cutover date the opening journal is
// frozen and edits fail with ErrCutoverLocked.
func (s *journalService) UpsertOpeningJournal(ctx context.Context, tenantID string, req dto.UpsertOpeningJournalRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	opening, err := s.periodSvc.GetOpeningPeriod(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no opening period designated for tenant", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to resolve opening period: %w", err)
	}

	// The cutover date is the opening period's start: once regular postings land
	// on or after it, opening balances anchor comparability and are frozen.
	posted, err := s.journalRepo.CountPostedNonOpeningSince(ctx, tenantID, opening.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check cutover usage: %w", err)
	}

	existing, err := s.journalRepo.FindOpeningJournal(ctx, tenantID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up opening journal: %w", err)
	}

	if posted > 0 {
		entityID := tenantID
		if existing != nil {
			entityID = existing.JournalID
		}
		s.recordJournalEvent(ctx, tenantID, entityID, "UPSERT_OPENING_JOURNAL", domain.OutcomeBlocked, "cutover date already used by posted activity", userID, domain.PermJournalCreate)
		return nil, apperrors.ErrCutoverLocked
	}

	if existing != nil && existing.Status == domain.Posted {
		return nil, fmt.Errorf("%w: opening journal is POSTED; reverse it before editing", apperrors.ErrInvalidState)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	if existing != nil {
		journalID = existing.JournalID
	}

	lines := buildLines(req.Lines, journalID, userID, now)
	if _, err := s.validateLines(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	journal := domain.JournalEntry{
		JournalID:   journalID,
		TenantID:    tenantID,
		JournalDate: opening.StartDate,
		Description: req.Description,
		Status:      domain.Draft,
		Source:      domain.SourceOpening,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if existing != nil {
		journal.AuditFields.CreatedAt = existing.CreatedAt
		journal.AuditFields.CreatedBy = existing.CreatedBy
		err = s.journalRepo.ReplaceJournal(ctx, journal)
	} else {
		err = s.journalRepo.SaveJournal(ctx, journal)
	}
	if err != nil {
		logger.Error("Failed to upsert opening journal", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to upsert opening journal: %w", err)
	}

	s.recordJournalEvent(ctx, tenantID, journalID, "UPSERT_OPENING_JOURNAL", domain.OutcomeSuccess, "", userID, domain.PermJournalCreate)
	logger.Info("Opening journal upserted", slog.String("journal_id", journalID), slog.String("tenant_id", tenantID))
	return &journal, nil
}

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error) {
	return s.getJournalWithLines(ctx, tenantID, journalID)
}

// ListJournals retrieves a token-paginated list of journal headers.
func (s *journalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	return &dto.ListJournalsResponse{Journals: journals, NextToken: nextToken}, nil
}
