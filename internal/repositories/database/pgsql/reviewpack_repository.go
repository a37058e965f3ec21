package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
)

type PgxReviewPackRepository struct {
	BaseRepository
}

// newPgxReviewPackRepository creates a new repository for review pack metadata.
func newPgxReviewPackRepository(pool *pgxpool.Pool) portsrepo.ReviewPackRepositoryFacade {
	return &PgxReviewPackRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReviewPackRepositoryFacade = (*PgxReviewPackRepository)(nil)

const packColumns = `
	pack_id, tenant_id, period_id, storage_key, size_bytes,
	archive_sha256, manifest_sha256, journal_count, generated_by, created_at
`

func scanPack(row pgx.Row) (*domain.ReviewPack, error) {
	var p domain.ReviewPack
	err := row.Scan(
		&p.PackID, &p.TenantID, &p.PeriodID, &p.StorageKey, &p.SizeBytes,
		&p.ArchiveSHA256, &p.ManifestSHA256, &p.JournalCount, &p.GeneratedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPackByID retrieves one pack scoped to the tenant.
func (r *PgxReviewPackRepository) FindPackByID(ctx context.Context, tenantID string, packID string) (*domain.ReviewPack, error) {
	query := `SELECT ` + packColumns + ` FROM review_packs WHERE tenant_id = $1 AND pack_id = $2;`

	pack, err := scanPack(r.Pool.QueryRow(ctx, query, tenantID, packID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query review pack "+packID, err)
	}
	return pack, nil
}

// ListPacksByPeriod retrieves all packs generated for a period, newest first.
func (r *PgxReviewPackRepository) ListPacksByPeriod(ctx context.Context, tenantID string, periodID string) ([]domain.ReviewPack, error) {
	query := `SELECT ` + packColumns + ` FROM review_packs
		WHERE tenant_id = $1 AND period_id = $2
		ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, tenantID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query review packs", err)
	}
	defer rows.Close()

	var packs []domain.ReviewPack
	for rows.Next() {
		pack, err := scanPack(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan review pack row", err)
		}
		packs = append(packs, *pack)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating review pack rows", err)
	}
	return packs, nil
}

// SavePack inserts a pack row. Packs are append-only and never updated.
func (r *PgxReviewPackRepository) SavePack(ctx context.Context, pack domain.ReviewPack) error {
	query := `
		INSERT INTO review_packs (` + packColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		pack.PackID, pack.TenantID, pack.PeriodID, pack.StorageKey, pack.SizeBytes,
		pack.ArchiveSHA256, pack.ManifestSHA256, pack.JournalCount, pack.GeneratedBy, pack.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert review pack "+pack.PackID, err)
	}
	return nil
}
