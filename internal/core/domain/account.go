package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side of the ledger an account normally carries.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// DimensionRequirement controls whether a dimension must, may or must not be
// supplied on journal lines hitting the account.
type DimensionRequirement string

const (
	DimensionRequired  DimensionRequirement = "REQUIRED"
	DimensionOptional  DimensionRequirement = "OPTIONAL"
	DimensionForbidden DimensionRequirement = "FORBIDDEN"
)

// Account represents one chart-of-accounts entry, scoped to a tenant.
type Account struct {
	AccountID        string               `json:"accountID"` // Primary Key (UUID)
	TenantID         string               `json:"tenantID"`  // FK -> tenants.tenant_id
	Code             string               `json:"code"`      // Human-readable account code
	Name             string               `json:"name"`
	AccountType      AccountType          `json:"accountType"`
	NormalBalance    NormalBalance        `json:"normalBalance"`
	IsPosting        bool                 `json:"isPosting"`        // Leaf accounts that accept journal lines
	IsControlAccount bool                 `json:"isControlAccount"` // Sensitive accounts flagged for risk scoring
	IsFrozen         bool                 `json:"isFrozen"`
	IsActive         bool                 `json:"isActive"`
	DepartmentReq    DimensionRequirement `json:"departmentReq"`
	ProjectReq       DimensionRequirement `json:"projectReq"`
	FundReq          DimensionRequirement `json:"fundReq"`
	AuditFields
}

// AcceptsPostings reports whether journal lines may reference this account.
func (a Account) AcceptsPostings() bool {
	return a.IsActive && a.IsPosting && !a.IsFrozen
}
