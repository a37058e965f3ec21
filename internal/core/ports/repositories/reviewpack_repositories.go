package repositories

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// ReviewPackReader defines read operations for review pack metadata.
type ReviewPackReader interface {
	// FindPackByID retrieves one pack scoped to the tenant.
	FindPackByID(ctx context.Context, tenantID string, packID string) (*domain.ReviewPack, error)

	// ListPacksByPeriod retrieves all packs generated for a period, newest first.
	ListPacksByPeriod(ctx context.Context, tenantID string, periodID string) ([]domain.ReviewPack, error)
}

// ReviewPackWriter defines write operations for review pack metadata.
type ReviewPackWriter interface {
	// SavePack inserts a pack row. Packs are append-only and never updated.
	SavePack(ctx context.Context, pack domain.ReviewPack) error
}

// ReviewPackRepositoryFacade combines review pack repository interfaces.
type ReviewPackRepositoryFacade interface {
	ReviewPackReader
	ReviewPackWriter
}
