package repositories

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for approved budget lines.
type BudgetReader interface {
	// FindBudgetLine retrieves the budget line for an (account, period, department)
	// combination. A nil department matches the undimensioned line. Returns
	// ErrNotFound when no budget exists for the combination.
	FindBudgetLine(ctx context.Context, tenantID string, accountID string, periodID string, departmentID *string) (*domain.BudgetLine, error)
}

// BudgetWriter defines write operations for budget lines.
type BudgetWriter interface {
	// SaveBudgetLine inserts or replaces a budget line.
	SaveBudgetLine(ctx context.Context, line domain.BudgetLine) error

	// AddActual atomically accumulates posted spend onto the matching budget line.
	// A missing line is a no-op (unbudgeted combinations are allowed).
	AddActual(ctx context.Context, tenantID string, accountID string, periodID string, departmentID *string, amount decimal.Decimal) error
}

// BudgetRepositoryFacade combines budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
