package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/dto"
	"github.com/quartzerp/glcore/internal/middleware"
)

var (
	ErrResidualExceedsCost = fmt.Errorf("%w: residual value must be between zero and cost", apperrors.ErrValidation)
	ErrUsefulLifeInvalid   = fmt.Errorf("%w: useful life must be a positive number of months", apperrors.ErrValidation)
)

// assetService owns the fixed-asset register.
type assetService struct {
	assetRepo portsrepo.AssetRepositoryFacade
}

// NewAssetService creates a new fixed-asset service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade) portssvc.AssetSvcFacade {
	return &assetService{assetRepo: assetRepo}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// CreateAsset registers a DRAFT asset under an existing category.
func (s *assetService) CreateAsset(ctx context.Context, tenantID string, req dto.CreateAssetRequest, userID string) (*domain.FixedAsset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost must be non-negative", apperrors.ErrValidation)
	}
	if req.ResidualValue.IsNegative() || req.ResidualValue.GreaterThan(req.Cost) {
		return nil, ErrResidualExceedsCost
	}
	if req.UsefulLifeMonths <= 0 {
		return nil, ErrUsefulLifeInvalid
	}

	if _, err := s.assetRepo.FindCategoryByID(ctx, tenantID, req.CategoryID); err != nil {
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}

	now := time.Now().UTC()
	asset := domain.FixedAsset{
		AssetID:          uuid.NewString(),
		TenantID:         tenantID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Cost:             req.Cost,
		ResidualValue:    req.ResidualValue,
		UsefulLifeMonths: req.UsefulLifeMonths,
		Method:           domain.StraightLine,
		Status:           domain.AssetDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		logger.Error("Failed to save asset", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	logger.Info("Asset created", slog.String("asset_id", asset.AssetID), slog.String("name", asset.Name))
	return &asset, nil
}

// GetAssetByID retrieves an asset.
func (s *assetService) GetAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error) {
	return s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
}

// CapitalizeAsset moves DRAFT -> CAPITALIZED, fixing the posting accounts from
// the category so later category edits do not rewrite history.
func (s *assetService) CapitalizeAsset(ctx context.Context, tenantID string, assetID string, req dto.CapitalizeAssetRequest, userID string) (*domain.FixedAsset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asset, err := s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetDraft {
		return nil, fmt.Errorf("%w: asset %s is %s, only DRAFT assets can be capitalized", apperrors.ErrInvalidState, assetID, asset.Status)
	}

	category, err := s.assetRepo.FindCategoryByID(ctx, tenantID, asset.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}

	now := time.Now().UTC()
	capDate := req.CapitalizationDate.UTC()
	asset.Status = domain.AssetCapitalized
	asset.AssetAccountID = category.AssetAccountID
	asset.AccumDepreciationAcctID = category.AccumDepreciationAcctID
	asset.DepreciationExpenseID = category.DepreciationExpenseID
	asset.CapitalizedAt = &capDate
	asset.LastUpdatedAt = now
	asset.LastUpdatedBy = userID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		logger.Error("Failed to capitalize asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to capitalize asset: %w", err)
	}

	logger.Info("Asset capitalized", slog.String("asset_id", assetID))
	return asset, nil
}

// DisposeAsset moves CAPITALIZED -> DISPOSED, stopping future depreciation.
func (s *assetService) DisposeAsset(ctx context.Context, tenantID string, assetID string, req dto.DisposeAssetRequest, userID string) (*domain.FixedAsset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asset, err := s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetCapitalized {
		return nil, fmt.Errorf("%w: asset %s is %s, only CAPITALIZED assets can be disposed", apperrors.ErrInvalidState, assetID, asset.Status)
	}

	now := time.Now().UTC()
	dispDate := req.DisposalDate.UTC()
	asset.Status = domain.AssetDisposed
	asset.DisposedAt = &dispDate
	asset.LastUpdatedAt = now
	asset.LastUpdatedBy = userID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		logger.Error("Failed to dispose asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to dispose asset: %w", err)
	}

	logger.Info("Asset disposed", slog.String("asset_id", assetID))
	return asset, nil
}
