package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/quartzerp/glcore/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a token-paginated list of journals for a tenant.
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines the maker/checker/poster lifecycle operations.
type JournalWriterSvc interface {
	// CreateJournal validates and persists a new DRAFT journal with its lines.
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateJournal replaces a DRAFT journal's content, re-validating as on create.
	UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error)

	// SubmitJournal transitions DRAFT -> SUBMITTED, re-checking balance.
	SubmitJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error)

	// ReviewJournal transitions SUBMITTED -> REVIEWED, computing and persisting
	// the risk score and budget impact at this step.
	ReviewJournal(ctx context.Context, tenantID string, journalID string, req dto.ReviewJournalRequest, userID string) (*domain.JournalEntry, error)

	// RejectJournal transitions SUBMITTED -> REJECTED (terminal).
	RejectJournal(ctx context.Context, tenantID string, journalID string, req dto.RejectJournalRequest, userID string) (*domain.JournalEntry, error)

	// ParkJournal transitions REVIEWED -> PARKED.
	ParkJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error)

	// ReturnToReview transitions REVIEWED or PARKED back to SUBMITTED.
	ReturnToReview(ctx context.Context, tenantID string, journalID string, req dto.ReturnJournalRequest, userID string) (*domain.JournalEntry, error)

	// PostJournal transitions REVIEWED -> POSTED: re-validates balance, requires an
	// open period, assigns the tenant-scoped journal number and freezes the entry.
	PostJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error)

	// PostJournalForRun posts like PostJournal and, in the same transaction,
	// attaches the posted journal to the given depreciation run.
	PostJournalForRun(ctx context.Context, tenantID string, journalID string, runID string, userID string) (*domain.JournalEntry, error)

	// ReverseJournal builds a new DRAFT mirroring a POSTED journal with debit and
	// credit swapped. The reversal is never auto-posted.
	ReverseJournal(ctx context.Context, tenantID string, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.JournalEntry, error)

	// UpsertOpeningJournal creates or replaces the tenant's single opening-balance
	// journal. Edits are refused with ErrCutoverLocked once regular postings have
	// landed on or after the cutover date.
	UpsertOpeningJournal(ctx context.Context, tenantID string, req dto.UpsertOpeningJournalRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
