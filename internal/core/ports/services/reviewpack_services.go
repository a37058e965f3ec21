package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// ReviewPackSvcFacade builds and retrieves tamper-evident period evidence packs.
type ReviewPackSvcFacade interface {
	// GeneratePack snapshots the period's posted journals into a hashed archive.
	// Generation is additive; each call produces a new, independent pack.
	GeneratePack(ctx context.Context, tenantID string, periodID string, actorUserID string) (*domain.ReviewPack, error)

	// ListPacks retrieves pack metadata for a period, newest first.
	ListPacks(ctx context.Context, tenantID string, periodID string) ([]domain.ReviewPack, error)

	// GetPackArchive fetches a pack's archive bytes, verifying the stored SHA-256
	// byte-for-byte before returning them.
	GetPackArchive(ctx context.Context, tenantID string, packID string) ([]byte, error)
}

// FileStoreSvc is the raw blob storage collaborator consumed by the pack builder.
type FileStoreSvc interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
