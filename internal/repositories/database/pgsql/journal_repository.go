package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	"github.com/quartzerp/glcore/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, tenant_id, journal_date, description, status, source, journal_number,
	risk_score, risk_flags, budget_status, budget_flags, override_reason,
	reversal_of_id, corrects_journal_id,
	submitted_by, submitted_at, reviewed_by, reviewed_at,
	rejected_by, rejected_at, returned_by, returned_at, posted_by, posted_at,
	rejection_reason, return_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournal(row pgx.Row) (*domain.JournalEntry, error) {
	var j domain.JournalEntry
	var riskFlags []string
	var budgetStatus, overrideReason, rejectionReason, returnReason *string
	err := row.Scan(
		&j.JournalID, &j.TenantID, &j.JournalDate, &j.Description, &j.Status, &j.Source, &j.JournalNumber,
		&j.RiskScore, &riskFlags, &budgetStatus, &j.BudgetFlags, &overrideReason,
		&j.ReversalOfID, &j.CorrectsJournalID,
		&j.SubmittedBy, &j.SubmittedAt, &j.ReviewedBy, &j.ReviewedAt,
		&j.RejectedBy, &j.RejectedAt, &j.ReturnedBy, &j.ReturnedAt, &j.PostedBy, &j.PostedAt,
		&rejectionReason, &returnReason,
		&j.CreatedAt, &j.CreatedBy, &j.LastUpdatedAt, &j.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	for _, f := range riskFlags {
		j.RiskFlags = append(j.RiskFlags, domain.RiskFlag(f))
	}
	if budgetStatus != nil {
		j.BudgetStatus = domain.BudgetStatus(*budgetStatus)
	}
	if overrideReason != nil {
		j.OverrideReason = *overrideReason
	}
	if rejectionReason != nil {
		j.RejectionReason = *rejectionReason
	}
	if returnReason != nil {
		j.ReturnReason = *returnReason
	}
	return &j, nil
}

func journalArgs(j domain.JournalEntry) []any {
	riskFlags := make([]string, len(j.RiskFlags))
	for i, f := range j.RiskFlags {
		riskFlags[i] = string(f)
	}
	var budgetStatus, overrideReason, rejectionReason, returnReason *string
	if j.BudgetStatus != "" {
		s := string(j.BudgetStatus)
		budgetStatus = &s
	}
	if j.OverrideReason != "" {
		overrideReason = &j.OverrideReason
	}
	if j.RejectionReason != "" {
		rejectionReason = &j.RejectionReason
	}
	if j.ReturnReason != "" {
		returnReason = &j.ReturnReason
	}
	return []any{
		j.JournalID, j.TenantID, j.JournalDate, j.Description, j.Status, j.Source, j.JournalNumber,
		j.RiskScore, riskFlags, budgetStatus, j.BudgetFlags, overrideReason,
		j.ReversalOfID, j.CorrectsJournalID,
		j.SubmittedBy, j.SubmittedAt, j.ReviewedBy, j.ReviewedAt,
		j.RejectedBy, j.RejectedAt, j.ReturnedBy, j.ReturnedAt, j.PostedBy, j.PostedAt,
		rejectionReason, returnReason,
		j.CreatedAt, j.CreatedBy, j.LastUpdatedAt, j.LastUpdatedBy,
	}
}

const insertJournalQuery = `
	INSERT INTO journal_entries (` + journalColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30);
`

const insertLineQuery = `
	INSERT INTO journal_lines (
		line_id, journal_id, account_id, legal_entity_id, department_id, project_id, fund_id,
		debit, credit, memo, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func queueLines(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, l := range lines {
		batch.Queue(insertLineQuery,
			l.LineID, l.JournalID, l.AccountID, l.LegalEntityID, l.DepartmentID, l.ProjectID, l.FundID,
			l.Debit, l.Credit, l.Memo, l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
		)
	}
}

// SaveJournal inserts a journal header and its lines in one transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertJournalQuery, journalArgs(journal)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueLines(batch, journal.Lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceJournal rewrites a journal's header and lines in one transaction.
func (r *PgxJournalRepository) ReplaceJournal(ctx context.Context, journal domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journal.JournalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal "+journal.JournalID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id = $1 AND journal_id = $2;`, journal.TenantID, journal.JournalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journal.JournalID, err)
	}

	if _, err := tx.Exec(ctx, insertJournalQuery, journalArgs(journal)...); err != nil {
		return apperrors.NewAppError(500, "failed to reinsert journal "+journal.JournalID, err)
	}
	batch := &pgx.Batch{}
	queueLines(batch, journal.Lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to reinsert lines for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

const updateStatusQuery = `
	UPDATE journal_entries
	SET status = $3, risk_score = $4, risk_flags = $5, budget_status = $6, budget_flags = $7,
	    override_reason = $8,
	    submitted_by = $9, submitted_at = $10, reviewed_by = $11, reviewed_at = $12,
	    rejected_by = $13, rejected_at = $14, returned_by = $15, returned_at = $16,
	    posted_by = $17, posted_at = $18,
	    rejection_reason = $19, return_reason = $20,
	    last_updated_at = $21, last_updated_by = $22
	WHERE tenant_id = $1 AND journal_id = $2
`

func statusArgs(j domain.JournalEntry) []any {
	riskFlags := make([]string, len(j.RiskFlags))
	for i, f := range j.RiskFlags {
		riskFlags[i] = string(f)
	}
	var budgetStatus, overrideReason, rejectionReason, returnReason *string
	if j.BudgetStatus != "" {
		s := string(j.BudgetStatus)
		budgetStatus = &s
	}
	if j.OverrideReason != "" {
		overrideReason = &j.OverrideReason
	}
	if j.RejectionReason != "" {
		rejectionReason = &j.RejectionReason
	}
	if j.ReturnReason != "" {
		returnReason = &j.ReturnReason
	}
	return []any{
		j.TenantID, j.JournalID,
		j.Status, j.RiskScore, riskFlags, budgetStatus, j.BudgetFlags,
		overrideReason,
		j.SubmittedBy, j.SubmittedAt, j.ReviewedBy, j.ReviewedAt,
		j.RejectedBy, j.RejectedAt, j.ReturnedBy, j.ReturnedAt,
		j.PostedBy, j.PostedAt,
		rejectionReason, returnReason,
		j.LastUpdatedAt, j.LastUpdatedBy,
	}
}

// UpdateJournalStatus persists a lifecycle transition.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, journal domain.JournalEntry) error {
	tag, err := r.Pool.Exec(ctx, updateStatusQuery+";", statusArgs(journal)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// PostJournal marks the journal POSTED and allocates the next tenant-scoped
// journal number, all inside one transaction. The sequence row is upserted in a
// single statement so concurrent posters serialize on the row lock. When runID
// is given, the same transaction attaches the journal to the depreciation run,
// so the posting and the attachment commit or roll back together.
func (r *PgxJournalRepository) PostJournal(ctx context.Context, journal domain.JournalEntry, runID *string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var number int64
	seqQuery := `
		INSERT INTO journal_sequences (tenant_id, last_value)
		VALUES ($1, 1)
		ON CONFLICT (tenant_id) DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value;
	`
	if err := tx.QueryRow(ctx, seqQuery, journal.TenantID).Scan(&number); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate journal number", err)
	}

	journal.JournalNumber = &number
	args := statusArgs(journal)
	args = append(args, number)
	query := updateStatusQuery + `, journal_number = $23;`
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to post journal "+journal.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrNotFound
	}

	if runID != nil {
		attach, err := tx.Exec(ctx,
			`UPDATE depreciation_runs SET journal_id = $2 WHERE run_id = $1;`,
			*runID, journal.JournalID,
		)
		if err != nil {
			return 0, apperrors.NewAppError(500, "failed to attach journal to depreciation run "+*runID, err)
		}
		if attach.RowsAffected() == 0 {
			return 0, apperrors.ErrNotFound
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return number, nil
}

// FindJournalByID retrieves a journal header (without lines) scoped to the tenant.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE tenant_id = $1 AND journal_id = $2;`

	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, tenantID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query journal "+journalID, err)
	}
	return journal, nil
}

// FindLinesByJournalID retrieves all lines for a journal, ordered by line ID.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, legal_entity_id, department_id, project_id, fund_id,
		       debit, credit, memo, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		var memo *string
		if err := rows.Scan(
			&l.LineID, &l.JournalID, &l.AccountID, &l.LegalEntityID, &l.DepartmentID, &l.ProjectID, &l.FundID,
			&l.Debit, &l.Credit, &memo, &l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		if memo != nil {
			l.Memo = *memo
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// ListJournalsByPeriod retrieves journals dated inside the period, optionally
// filtered by status, ordered by journal number then creation time.
func (r *PgxJournalRepository) ListJournalsByPeriod(ctx context.Context, tenantID string, period domain.AccountingPeriod, status *domain.JournalStatus) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE tenant_id = $1 AND journal_date >= $2 AND journal_date <= $3
		  AND ($4::text IS NULL OR status = $4)
		ORDER BY journal_number NULLS LAST, created_at;`

	rows, err := r.Pool.Query(ctx, query, tenantID, period.StartDate, period.EndDate, status)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals for period "+period.PeriodID, err)
	}
	defer rows.Close()

	return collectJournals(rows)
}

// ListJournals retrieves a token-paginated list of journals, newest date first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var afterDate, afterCreated *time.Time
	if nextToken != nil {
		d, c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		afterDate, afterCreated = &d, &c
	}

	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE tenant_id = $1
		  AND ($3::timestamptz IS NULL OR (journal_date, created_at) < ($3, $4))
		ORDER BY journal_date DESC, created_at DESC
		LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, tenantID, limit+1, afterDate, afterCreated)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	journals, err := collectJournals(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		t := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &t
	}
	return journals, token, nil
}

// FindOpeningJournal retrieves the tenant's single opening-balance journal, if any.
func (r *PgxJournalRepository) FindOpeningJournal(ctx context.Context, tenantID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE tenant_id = $1 AND source = $2 LIMIT 1;`

	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, tenantID, domain.SourceOpening))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query opening journal", err)
	}
	return journal, nil
}

// CountPostedNonOpeningSince counts POSTED non-opening journals dated on or
// after the cutover date.
func (r *PgxJournalRepository) CountPostedNonOpeningSince(ctx context.Context, tenantID string, cutover time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE tenant_id = $1 AND status = $2 AND source <> $3 AND journal_date >= $4;
	`
	var count int
	err := r.Pool.QueryRow(ctx, query, tenantID, domain.Posted, domain.SourceOpening, cutover).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count posted journals since cutover", err)
	}
	return count, nil
}

func collectJournals(rows pgx.Rows) ([]domain.JournalEntry, error) {
	var journals []domain.JournalEntry
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}
	return journals, nil
}
