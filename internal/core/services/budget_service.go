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
	"github.com/shopspring/decimal"
)

// warnRatio is the share of the approved amount at which a line turns WARN.
var warnRatio = decimal.NewFromFloat(0.9)

// budgetService projects journal spend against approved budget lines.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetImpactEvaluator.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// EvaluateJournal computes the projected budget consumption of the journal's
// debit lines against current budget state. The worst line status wins:
// BLOCK when a line would exceed its approved amount, WARN when it would reach
// the warning ratio. Lines without a budget are OK.
func (s *budgetService) EvaluateJournal(ctx context.Context, tenantID string, journal domain.JournalEntry, period domain.AccountingPeriod) (domain.BudgetStatus, []string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.BudgetOK
	var flags []string

	for _, line := range journal.Lines {
		if line.Debit.IsZero() {
			continue
		}

		budget, err := s.budgetRepo.FindBudgetLine(ctx, tenantID, line.AccountID, period.PeriodID, line.DepartmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue // unbudgeted combination
			}
			logger.Error("Failed to fetch budget line", slog.String("error", err.Error()), slog.String("account_id", line.AccountID))
			return "", nil, fmt.Errorf("failed to fetch budget line: %w", err)
		}

		projected := budget.Consumed().Add(line.Debit)
		switch {
		case projected.GreaterThan(budget.ApprovedAmount):
			status = status.Worse(domain.BudgetBlock)
			flags = append(flags, fmt.Sprintf("BLOCK account %s: projected %s exceeds approved %s",
				line.AccountID, projected.String(), budget.ApprovedAmount.String()))
		case projected.GreaterThanOrEqual(budget.ApprovedAmount.Mul(warnRatio)):
			status = status.Worse(domain.BudgetWarn)
			flags = append(flags, fmt.Sprintf("WARN account %s: projected %s of approved %s",
				line.AccountID, projected.String(), budget.ApprovedAmount.String()))
		}
	}

	return status, flags, nil
}

// RecordActuals accumulates a posted journal's debit lines onto the matching
// budget lines. Unbudgeted combinations are skipped.
func (s *budgetService) RecordActuals(ctx context.Context, tenantID string, journal domain.JournalEntry, period domain.AccountingPeriod) error {
	for _, line := range journal.Lines {
		if line.Debit.IsZero() {
			continue
		}
		if err := s.budgetRepo.AddActual(ctx, tenantID, line.AccountID, period.PeriodID, line.DepartmentID, line.Debit); err != nil {
			return fmt.Errorf("failed to record actuals for account %s: %w", line.AccountID, err)
		}
	}
	return nil
}

// SetBudgetLine records an approved budget line for an (account, period,
// department) combination.
func (s *budgetService) SetBudgetLine(ctx context.Context, tenantID string, req dto.SetBudgetLineRequest, userID string) (*domain.BudgetLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ApprovedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: approved amount must be non-negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	line := domain.BudgetLine{
		BudgetLineID:    uuid.NewString(),
		TenantID:        tenantID,
		AccountID:       req.AccountID,
		PeriodID:        req.PeriodID,
		DepartmentID:    req.DepartmentID,
		ApprovedAmount:  req.ApprovedAmount,
		CommittedAmount: decimal.Zero,
		ActualAmount:    decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudgetLine(ctx, line); err != nil {
		logger.Error("Failed to save budget line", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save budget line: %w", err)
	}

	logger.Info("Budget line saved", slog.String("budget_line_id", line.BudgetLineID), slog.String("account_id", req.AccountID))
	return &line, nil
}
