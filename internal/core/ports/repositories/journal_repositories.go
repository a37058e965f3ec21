package repositories

import (
	"context"
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// JournalReader defines read operations for journal entries and their lines.
type JournalReader interface {
	// FindJournalByID retrieves a journal header (without lines) scoped to the tenant.
	FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error)

	// FindLinesByJournalID retrieves all lines for a journal, ordered by line ID.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournalsByPeriod retrieves all journals whose journal date falls inside the
	// period, optionally filtered by status, ordered by journal number then creation time.
	ListJournalsByPeriod(ctx context.Context, tenantID string, period domain.AccountingPeriod, status *domain.JournalStatus) ([]domain.JournalEntry, error)

	// ListJournals retrieves a token-paginated list of journals for the tenant.
	ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindOpeningJournal retrieves the tenant's single opening-balance journal, if any.
	FindOpeningJournal(ctx context.Context, tenantID string) (*domain.JournalEntry, error)

	// CountPostedNonOpeningSince counts POSTED non-opening journals dated on or after
	// the cutover date. Used to decide whether the opening journal is still editable.
	CountPostedNonOpeningSince(ctx context.Context, tenantID string, cutover time.Time) (int, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveJournal inserts a journal header and its lines in one transaction.
	SaveJournal(ctx context.Context, journal domain.JournalEntry) error

	// ReplaceJournal rewrites a DRAFT journal's header and lines in one transaction.
	ReplaceJournal(ctx context.Context, journal domain.JournalEntry) error

	// UpdateJournalStatus persists a lifecycle transition: status, actor/time stamps,
	// risk and budget annotations, and transition reasons.
	UpdateJournalStatus(ctx context.Context, journal domain.JournalEntry) error

	// PostJournal atomically marks the journal POSTED, stamps the poster, and
	// allocates the next tenant-scoped journal number via a server-side sequence.
	// When runID is non-nil the same transaction attaches the journal to that
	// depreciation run. The assigned number is returned.
	PostJournal(ctx context.Context, journal domain.JournalEntry, runID *string) (int64, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends the facade with transaction management.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
