package domain

import "github.com/shopspring/decimal"

// BudgetStatus is the outcome of evaluating a journal against approved budgets.
type BudgetStatus string

const (
	BudgetOK    BudgetStatus = "OK"
	BudgetWarn  BudgetStatus = "WARN"
	BudgetBlock BudgetStatus = "BLOCK"
)

// Worse returns the more severe of the two statuses.
func (s BudgetStatus) Worse(other BudgetStatus) BudgetStatus {
	rank := map[BudgetStatus]int{BudgetOK: 0, BudgetWarn: 1, BudgetBlock: 2}
	if rank[other] > rank[s] {
		return other
	}
	return s
}

// BudgetLine is the approved budget for one (account, period, dimension) combination,
// together with the spend already recorded against it.
type BudgetLine struct {
	BudgetLineID    string          `json:"budgetLineID"`
	TenantID        string          `json:"tenantID"`
	AccountID       string          `json:"accountID"`
	PeriodID        string          `json:"periodID"`
	DepartmentID    *string         `json:"departmentID,omitempty"`
	ApprovedAmount  decimal.Decimal `json:"approvedAmount"`
	CommittedAmount decimal.Decimal `json:"committedAmount"`
	ActualAmount    decimal.Decimal `json:"actualAmount"`
	AuditFields
}

// Consumed returns committed plus actual spend against the line.
func (b BudgetLine) Consumed() decimal.Decimal {
	return b.CommittedAmount.Add(b.ActualAmount)
}
