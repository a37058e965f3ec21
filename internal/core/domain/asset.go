package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedAssetStatus indicates the lifecycle state of a fixed asset.
type FixedAssetStatus string

const (
	AssetDraft       FixedAssetStatus = "DRAFT"
	AssetCapitalized FixedAssetStatus = "CAPITALIZED"
	AssetDisposed    FixedAssetStatus = "DISPOSED"
)

// DepreciationMethod names the depreciation algorithm applied to an asset.
type DepreciationMethod string

const (
	StraightLine DepreciationMethod = "STRAIGHT_LINE"
)

// FixedAssetCategory groups assets and carries the default posting accounts
// applied at capitalization.
type FixedAssetCategory struct {
	CategoryID              string `json:"categoryID"`
	TenantID                string `json:"tenantID"`
	Name                    string `json:"name"`
	AssetAccountID          string `json:"assetAccountID"`
	AccumDepreciationAcctID string `json:"accumDepreciationAcctID"`
	DepreciationExpenseID   string `json:"depreciationExpenseID"`
	AuditFields
}

// FixedAsset is a tenant-scoped depreciable asset.
type FixedAsset struct {
	AssetID          string             `json:"assetID"`
	TenantID         string             `json:"tenantID"`
	CategoryID       string             `json:"categoryID"`
	Name             string             `json:"name"`
	Cost             decimal.Decimal    `json:"cost"`
	ResidualValue    decimal.Decimal    `json:"residualValue"` // 0 <= residual <= cost
	UsefulLifeMonths int                `json:"usefulLifeMonths"`
	Method           DepreciationMethod `json:"method"`
	Status           FixedAssetStatus   `json:"status"`

	// Posting accounts, fixed at capitalization.
	AssetAccountID          string `json:"assetAccountID,omitempty"`
	AccumDepreciationAcctID string `json:"accumDepreciationAcctID,omitempty"`
	DepreciationExpenseID   string `json:"depreciationExpenseID,omitempty"`

	CapitalizedAt *time.Time `json:"capitalizedAt,omitempty"`
	DisposedAt    *time.Time `json:"disposedAt,omitempty"`
	AuditFields
}

// MonthlyDepreciation returns the straight-line monthly charge, zero when the
// useful life is not positive.
func (a FixedAsset) MonthlyDepreciation() decimal.Decimal {
	if a.UsefulLifeMonths <= 0 {
		return decimal.Zero
	}
	return a.Cost.Sub(a.ResidualValue).DivRound(decimal.NewFromInt(int64(a.UsefulLifeMonths)), 2)
}

// DepreciationRun records one execution of the month-end depreciation job.
// Uniqueness on (tenant, period) is the run-once guarantee.
type DepreciationRun struct {
	RunID       string          `json:"runID"`
	TenantID    string          `json:"tenantID"`
	PeriodID    string          `json:"periodID"`
	JournalID   *string         `json:"journalID,omitempty"` // nil for zero-line runs
	TotalAmount decimal.Decimal `json:"totalAmount"`
	RunBy       string          `json:"runBy"`
	RunAt       time.Time       `json:"runAt"`
	Lines       []DepreciationLine `json:"lines,omitempty"`
}

// DepreciationLine is the per-asset amount contributing to a run.
type DepreciationLine struct {
	LineID           string          `json:"lineID"`
	RunID            string          `json:"runID"`
	AssetID          string          `json:"assetID"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	AccumAccountID   string          `json:"accumAccountID"`
	Amount           decimal.Decimal `json:"amount"`
}
