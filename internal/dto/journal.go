package dto

import (
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of an inbound journal payload. Exactly one of
// Debit/Credit must be non-zero; both must be non-negative.
type JournalLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	LegalEntityID *string         `json:"legalEntityID,omitempty"`
	DepartmentID  *string         `json:"departmentID,omitempty"`
	ProjectID     *string         `json:"projectID,omitempty"`
	FundID        *string         `json:"fundID,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Memo          string          `json:"memo,omitempty"`
}

// CreateJournalRequest is the payload for creating a DRAFT journal entry.
// Source is left empty by external callers (defaults to MANUAL); internal
// consumers such as the depreciation engine set it to SYSTEM.
type CreateJournalRequest struct {
	Date              time.Time            `json:"date" binding:"required"`
	Description       string               `json:"description" binding:"required"`
	Source            domain.JournalSource `json:"-"`
	CorrectsJournalID *string              `json:"correctsJournalID,omitempty"`
	Lines             []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalRequest replaces a DRAFT journal's content. The full line set is
// re-supplied and re-validated exactly as on create.
type UpdateJournalRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReviewJournalRequest carries the optional override justification that lets a
// reviewer proceed past a budget BLOCK.
type ReviewJournalRequest struct {
	OverrideReason *string `json:"overrideReason,omitempty"`
}

// RejectJournalRequest carries the mandatory rejection reason.
type RejectJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReturnJournalRequest carries the reason for returning a REVIEWED (or PARKED)
// journal back to SUBMITTED.
type ReturnJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseJournalRequest carries the reason attached to a reversal DRAFT.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpsertOpeningJournalRequest carries the opening-balance journal content. The
// entry is upserted (one per tenant) into the designated opening period.
type UpsertOpeningJournalRequest struct {
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a page of journals plus the token for the next page.
type ListJournalsResponse struct {
	Journals  []domain.JournalEntry `json:"journals"`
	NextToken *string               `json:"nextToken,omitempty"`
}
