package services

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/middleware"
)

// ErrPackCorrupted is returned when a stored archive no longer matches its
// recorded SHA-256.
var ErrPackCorrupted = fmt.Errorf("%w: review pack archive does not match its recorded hash", apperrors.ErrInternal)

// packManifest is the deterministic index written into every archive. It
// carries no timestamps so that identical period content hashes identically.
type packManifest struct {
	TenantID     string             `json:"tenantID"`
	PeriodID     string             `json:"periodID"`
	PeriodName   string             `json:"periodName"`
	JournalCount int                `json:"journalCount"`
	Journals     []manifestJournal  `json:"journals"`
}

type manifestJournal struct {
	JournalNumber int64           `json:"journalNumber"`
	JournalID     string          `json:"journalID"`
	JournalDate   string          `json:"journalDate"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	LineCount     int             `json:"lineCount"`
	File          string          `json:"file"`
}

// reviewPackService builds tamper-evident archives of a period's posted journals.
type reviewPackService struct {
	packRepo    portsrepo.ReviewPackRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	periodSvc   portssvc.PeriodSvcFacade
	store       portssvc.FileStoreSvc
	audit       portssvc.AuditRecorderSvc
}

// NewReviewPackService creates a new review pack builder.
func NewReviewPackService(
	packRepo portsrepo.ReviewPackRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodSvc portssvc.PeriodSvcFacade,
	store portssvc.FileStoreSvc,
	audit portssvc.AuditRecorderSvc,
) portssvc.ReviewPackSvcFacade {
	return &reviewPackService{
		packRepo:    packRepo,
		journalRepo: journalRepo,
		periodSvc:   periodSvc,
		store:       store,
		audit:       audit,
	}
}

var _ portssvc.ReviewPackSvcFacade = (*reviewPackService)(nil)

// GeneratePack snapshots the period's POSTED journals into a zip archive
// containing a manifest and one JSON document per journal, hashes both, stores
// the archive and records the pack row. The blob is written before the row so
// a recorded pack always has retrievable bytes.
func (s *reviewPackService) GeneratePack(ctx context.Context, tenantID string, periodID string, actorUserID string) (*domain.ReviewPack, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodSvc.GetPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}

	posted := domain.Posted
	journals, err := s.journalRepo.ListJournalsByPeriod(ctx, tenantID, *period, &posted)
	if err != nil {
		return nil, fmt.Errorf("failed to list posted journals: %w", err)
	}
	for i := range journals {
		lines, err := s.journalRepo.FindLinesByJournalID(ctx, journals[i].JournalID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch lines for journal %s: %w", journals[i].JournalID, err)
		}
		journals[i].Lines = lines
	}

	packID := uuid.NewString()
	archive, manifestSum, err := buildArchive(tenantID, *period, journals)
	if err != nil {
		return nil, fmt.Errorf("failed to build pack archive: %w", err)
	}

	archiveSum := sha256.Sum256(archive)
	storageKey := fmt.Sprintf("%s/%s/%s.zip", tenantID, periodID, packID)

	if err := s.store.Put(ctx, storageKey, archive); err != nil {
		logger.Error("Failed to store pack archive", slog.String("error", err.Error()), slog.String("storage_key", storageKey))
		return nil, fmt.Errorf("failed to store pack archive: %w", err)
	}

	pack := domain.ReviewPack{
		PackID:         packID,
		TenantID:       tenantID,
		PeriodID:       periodID,
		StorageKey:     storageKey,
		SizeBytes:      int64(len(archive)),
		ArchiveSHA256:  hex.EncodeToString(archiveSum[:]),
		ManifestSHA256: manifestSum,
		JournalCount:   len(journals),
		GeneratedBy:    actorUserID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.packRepo.SavePack(ctx, pack); err != nil {
		logger.Error("Failed to save pack metadata", slog.String("error", err.Error()), slog.String("pack_id", packID))
		return nil, fmt.Errorf("failed to save pack metadata: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEvent{
		TenantID:   tenantID,
		EventType:  "REVIEW_PACK",
		EntityType: "review_pack",
		EntityID:   packID,
		Action:     "GENERATE_PACK",
		Outcome:    domain.OutcomeSuccess,
		ActorID:    actorUserID,
	})
	logger.Info("Review pack generated",
		slog.String("pack_id", packID),
		slog.String("period_id", periodID),
		slog.Int("journal_count", len(journals)),
		slog.Int64("size_bytes", pack.SizeBytes),
	)
	return &pack, nil
}

// buildArchive writes the manifest and per-journal documents into a zip held in
// memory. File ordering and content are deterministic for a given journal set.
func buildArchive(tenantID string, period domain.AccountingPeriod, journals []domain.JournalEntry) ([]byte, string, error) {
	manifest := packManifest{
		TenantID:     tenantID,
		PeriodID:     period.PeriodID,
		PeriodName:   period.Name,
		JournalCount: len(journals),
		Journals:     make([]manifestJournal, 0, len(journals)),
	}

	type journalFile struct {
		name string
		data []byte
	}
	files := make([]journalFile, 0, len(journals))

	for _, journal := range journals {
		var number int64
		if journal.JournalNumber != nil {
			number = *journal.JournalNumber
		}
		name := fmt.Sprintf("journals/%d.json", number)
		data, err := json.MarshalIndent(journal, "", "  ")
		if err != nil {
			return nil, "", err
		}
		files = append(files, journalFile{name: name, data: data})
		manifest.Journals = append(manifest.Journals, manifestJournal{
			JournalNumber: number,
			JournalID:     journal.JournalID,
			JournalDate:   journal.JournalDate.Format("2006-01-02"),
			Description:   journal.Description,
			Amount:        sumDebits(journal.Lines),
			LineCount:     len(journal.Lines),
			File:          name,
		})
	}

	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, "", err
	}
	manifestSum := sha256.Sum256(manifestBytes)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("manifest.json")
	if err != nil {
		return nil, "", err
	}
	if _, err := w.Write(manifestBytes); err != nil {
		return nil, "", err
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, "", err
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, "", err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), hex.EncodeToString(manifestSum[:]), nil
}

func sumDebits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}

// ListPacks retrieves pack metadata for a period, newest first.
func (s *reviewPackService) ListPacks(ctx context.Context, tenantID string, periodID string) ([]domain.ReviewPack, error) {
	if _, err := s.periodSvc.GetPeriodByID(ctx, tenantID, periodID); err != nil {
		return nil, err
	}
	return s.packRepo.ListPacksByPeriod(ctx, tenantID, periodID)
}

// GetPackArchive fetches the archive bytes, verifying the recorded SHA-256
// before handing them out.
func (s *reviewPackService) GetPackArchive(ctx context.Context, tenantID string, packID string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pack, err := s.packRepo.FindPackByID(ctx, tenantID, packID)
	if err != nil {
		return nil, err
	}

	data, err := s.store.Get(ctx, pack.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pack archive: %w", err)
	}

	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != pack.ArchiveSHA256 {
		logger.Error("Pack archive hash mismatch", slog.String("pack_id", packID), slog.String("storage_key", pack.StorageKey))
		return nil, ErrPackCorrupted
	}
	return data, nil
}
