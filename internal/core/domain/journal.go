package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry in the maker/checker/poster lifecycle.
type JournalStatus string

const (
	Draft     JournalStatus = "DRAFT"
	Submitted JournalStatus = "SUBMITTED"
	Reviewed  JournalStatus = "REVIEWED"
	Posted    JournalStatus = "POSTED"
	Rejected  JournalStatus = "REJECTED"
	Parked    JournalStatus = "PARKED"
)

// JournalSource distinguishes how a journal entry originated.
type JournalSource string

const (
	SourceManual  JournalSource = "MANUAL"
	SourceSystem  JournalSource = "SYSTEM"  // e.g. depreciation runs
	SourceOpening JournalSource = "OPENING" // opening-balance cutover journal
)

// JournalEntry represents a single, balanced financial event composed of multiple lines.
// Entries are mutable only while DRAFT and become immutable at POSTED.
type JournalEntry struct {
	JournalID   string        `json:"journalID"` // Primary Key (UUID)
	TenantID    string        `json:"tenantID"`
	JournalDate time.Time     `json:"journalDate"` // Effective accounting date
	Description string        `json:"description"`
	Status      JournalStatus `json:"status"`
	Source      JournalSource `json:"source"`

	// JournalNumber is assigned from the tenant-scoped sequence at POST only;
	// nil for any entry that has never posted.
	JournalNumber *int64 `json:"journalNumber,omitempty"`

	RiskScore    int          `json:"riskScore"`
	RiskFlags    []RiskFlag   `json:"riskFlags,omitempty"`
	BudgetStatus BudgetStatus `json:"budgetStatus,omitempty"`
	BudgetFlags  []string     `json:"budgetFlags,omitempty"`

	// OverrideReason holds the justification when an approval override was used to
	// proceed past a budget BLOCK.
	OverrideReason string `json:"overrideReason,omitempty"`

	// Non-owning self references, lookup only.
	ReversalOfID      *string `json:"reversalOfID,omitempty"`
	CorrectsJournalID *string `json:"correctsJournalID,omitempty"`

	SubmittedBy *string    `json:"submittedBy,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ReviewedBy  *string    `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	RejectedBy  *string    `json:"rejectedBy,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	ReturnedBy  *string    `json:"returnedBy,omitempty"`
	ReturnedAt  *time.Time `json:"returnedAt,omitempty"`
	PostedBy    *string    `json:"postedBy,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`

	RejectionReason string `json:"rejectionReason,omitempty"`
	ReturnReason    string `json:"returnReason,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line item within a journal entry, affecting one account.
// Exactly one of Debit/Credit is non-zero, and both are non-negative.
type JournalLine struct {
	LineID    string `json:"lineID"` // Primary Key (UUID)
	JournalID string `json:"journalID"`
	AccountID string `json:"accountID"`

	LegalEntityID *string `json:"legalEntityID,omitempty"`
	DepartmentID  *string `json:"departmentID,omitempty"`
	ProjectID     *string `json:"projectID,omitempty"`
	FundID        *string `json:"fundID,omitempty"`

	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Memo   string          `json:"memo,omitempty"`
	AuditFields
}
