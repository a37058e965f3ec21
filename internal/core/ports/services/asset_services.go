package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/quartzerp/glcore/internal/dto"
)

// AssetSvcFacade owns the fixed-asset lifecycle feeding the depreciation engine.
type AssetSvcFacade interface {
	// CreateAsset registers a DRAFT asset.
	CreateAsset(ctx context.Context, tenantID string, req dto.CreateAssetRequest, userID string) (*domain.FixedAsset, error)

	// GetAssetByID retrieves an asset.
	GetAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error)

	// CapitalizeAsset moves DRAFT -> CAPITALIZED and fixes the posting accounts
	// from the asset's category.
	CapitalizeAsset(ctx context.Context, tenantID string, assetID string, req dto.CapitalizeAssetRequest, userID string) (*domain.FixedAsset, error)

	// DisposeAsset moves CAPITALIZED -> DISPOSED, which stops future accrual.
	DisposeAsset(ctx context.Context, tenantID string, assetID string, req dto.DisposeAssetRequest, userID string) (*domain.FixedAsset, error)
}

// DepreciationSvcFacade runs the once-per-period depreciation batch job.
type DepreciationSvcFacade interface {
	// RunForPeriod computes straight-line depreciation for eligible assets,
	// posts one consolidated journal and finalizes the run. Exactly once per
	// (tenant, period); a second attempt fails with ErrAlreadyRun.
	RunForPeriod(ctx context.Context, tenantID string, periodID string, actorUserID string) (*domain.DepreciationRun, error)

	// GetRunForPeriod retrieves the run (with lines) for a period, if any.
	GetRunForPeriod(ctx context.Context, tenantID string, periodID string) (*domain.DepreciationRun, error)
}
