package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/quartzerp/glcore/internal/dto"
)

// BudgetSvcFacade evaluates journal lines against approved budgets and keeps
// budget actuals current as journals post.
type BudgetSvcFacade interface {
	// EvaluateJournal computes the projected budget impact of the journal's debit
	// lines for the covering period. The worst line status wins. Always evaluated
	// against current budget state, never cached.
	EvaluateJournal(ctx context.Context, tenantID string, journal domain.JournalEntry, period domain.AccountingPeriod) (domain.BudgetStatus, []string, error)

	// RecordActuals accumulates a posted journal's debit lines onto the matching
	// budget lines.
	RecordActuals(ctx context.Context, tenantID string, journal domain.JournalEntry, period domain.AccountingPeriod) error

	// SetBudgetLine records an approved budget line.
	SetBudgetLine(ctx context.Context, tenantID string, req dto.SetBudgetLineRequest, userID string) (*domain.BudgetLine, error)
}
