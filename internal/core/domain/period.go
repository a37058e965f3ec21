package domain

import "time"

// PeriodStatus indicates the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen     PeriodStatus = "OPEN"
	PeriodClosed   PeriodStatus = "CLOSED"
	PeriodReopened PeriodStatus = "REOPENED"
)

// AccountingPeriod is a tenant-scoped, non-overlapping date range that gates posting.
type AccountingPeriod struct {
	PeriodID        string       `json:"periodID"` // Primary Key (UUID)
	TenantID        string       `json:"tenantID"`
	Name            string       `json:"name"` // e.g. "2026-03"
	StartDate       time.Time    `json:"startDate"`
	EndDate         time.Time    `json:"endDate"`
	Status          PeriodStatus `json:"status"`
	IsOpeningPeriod bool         `json:"isOpeningPeriod"` // Designated cutover period for opening balances
	ClosedBy        *string      `json:"closedBy,omitempty"`
	ClosedAt        *time.Time   `json:"closedAt,omitempty"`
	ReopenReason    string       `json:"reopenReason,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls inside the period (inclusive on both ends).
func (p AccountingPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// IsOpenForPosting reports whether new postings may land in this period.
func (p AccountingPeriod) IsOpenForPosting() bool {
	return p.Status == PeriodOpen || p.Status == PeriodReopened
}

// ChecklistItem is one named close-readiness task on a period. Completion is append-only.
type ChecklistItem struct {
	ItemID      string     `json:"itemID"`
	PeriodID    string     `json:"periodID"`
	Name        string     `json:"name"`
	Completed   bool       `json:"completed"`
	CompletedBy *string    `json:"completedBy,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
