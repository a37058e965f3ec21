package repositories

import (
	"context"
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// AssetReader defines read operations for fixed assets and depreciation runs.
type AssetReader interface {
	// FindAssetByID retrieves an asset scoped to the tenant.
	FindAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error)

	// FindCategoryByID retrieves an asset category scoped to the tenant.
	FindCategoryByID(ctx context.Context, tenantID string, categoryID string) (*domain.FixedAssetCategory, error)

	// ListDepreciableAssets retrieves CAPITALIZED assets whose capitalization date is
	// on or before the cutoff, ordered by asset ID for deterministic runs.
	ListDepreciableAssets(ctx context.Context, tenantID string, cutoff time.Time) ([]domain.FixedAsset, error)

	// FindRunByPeriod retrieves the depreciation run for a (tenant, period), if any.
	FindRunByPeriod(ctx context.Context, tenantID string, periodID string) (*domain.DepreciationRun, error)

	// FindRunLines retrieves the per-asset lines of a run.
	FindRunLines(ctx context.Context, runID string) ([]domain.DepreciationLine, error)
}

// AssetWriter defines write operations for fixed assets and depreciation runs.
type AssetWriter interface {
	// SaveAsset inserts a new asset.
	SaveAsset(ctx context.Context, asset domain.FixedAsset) error

	// UpdateAsset persists lifecycle changes (capitalization, disposal).
	UpdateAsset(ctx context.Context, asset domain.FixedAsset) error

	// SaveCategory inserts a new asset category.
	SaveCategory(ctx context.Context, category domain.FixedAssetCategory) error

	// CreateRun inserts a run and its lines in one transaction. The unique
	// (tenant, period) constraint is the run-once guard: a violation is
	// translated to ErrAlreadyRun, never leaked raw.
	CreateRun(ctx context.Context, run domain.DepreciationRun) error

	// DeleteRun removes a reserved run and its lines. Used to release the
	// (tenant, period) reservation when the consolidated journal cannot be
	// posted, so a corrected retry does not fail the run-once guard.
	DeleteRun(ctx context.Context, runID string) error
}

// AssetRepositoryFacade combines all asset repository interfaces.
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}
