package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/core/services"
	"github.com/quartzerp/glcore/internal/dto"
)

type AssetServiceTestSuite struct {
	suite.Suite
	assetRepo *MockAssetRepository
	service   portssvc.AssetSvcFacade
	category  domain.FixedAssetCategory
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.assetRepo = new(MockAssetRepository)
	suite.service = services.NewAssetService(suite.assetRepo)
	suite.category = domain.FixedAssetCategory{
		CategoryID:              "cat-1",
		TenantID:                testTenantID,
		Name:                    "IT Equipment",
		AssetAccountID:          "acc-asset",
		AccumDepreciationAcctID: accumDepAccountID,
		DepreciationExpenseID:   depExpenseAccountID,
	}
}

func (suite *AssetServiceTestSuite) validCreateRequest() dto.CreateAssetRequest {
	return dto.CreateAssetRequest{
		CategoryID:       "cat-1",
		Name:             "Laptop fleet",
		Cost:             decimal.NewFromInt(12000),
		ResidualValue:    decimal.NewFromInt(1200),
		UsefulLifeMonths: 36,
	}
}

func (suite *AssetServiceTestSuite) TestCreateAssetSuccess() {
	suite.assetRepo.On("FindCategoryByID", mock.Anything, testTenantID, "cat-1").Return(&suite.category, nil).Once()
	suite.assetRepo.On("SaveAsset", mock.Anything, mock.AnythingOfType("domain.FixedAsset")).Return(nil).Once()

	asset, err := suite.service.CreateAsset(context.Background(), testTenantID, suite.validCreateRequest(), testMakerID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssetDraft, asset.Status)
	suite.Equal(domain.StraightLine, asset.Method)
	suite.Empty(asset.AssetAccountID) // accounts bind at capitalization, not creation
	suite.Nil(asset.CapitalizedAt)
}

func (suite *AssetServiceTestSuite) TestCreateAssetRejectsResidualAboveCost() {
	req := suite.validCreateRequest()
	req.ResidualValue = decimal.NewFromInt(20000)

	_, err := suite.service.CreateAsset(context.Background(), testTenantID, req, testMakerID)

	suite.Require().ErrorIs(err, services.ErrResidualExceedsCost)
	suite.assetRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestCreateAssetRejectsNonPositiveLife() {
	req := suite.validCreateRequest()
	req.UsefulLifeMonths = 0

	_, err := suite.service.CreateAsset(context.Background(), testTenantID, req, testMakerID)

	suite.Require().ErrorIs(err, services.ErrUsefulLifeInvalid)
}

func (suite *AssetServiceTestSuite) TestCreateAssetRequiresExistingCategory() {
	suite.assetRepo.On("FindCategoryByID", mock.Anything, testTenantID, "cat-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAsset(context.Background(), testTenantID, suite.validCreateRequest(), testMakerID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AssetServiceTestSuite) TestCapitalizeAssetBindsCategoryAccounts() {
	asset := &domain.FixedAsset{
		AssetID:          "asset-1",
		TenantID:         testTenantID,
		CategoryID:       "cat-1",
		Cost:             decimal.NewFromInt(12000),
		ResidualValue:    decimal.NewFromInt(1200),
		UsefulLifeMonths: 36,
		Method:           domain.StraightLine,
		Status:           domain.AssetDraft,
	}
	suite.assetRepo.On("FindAssetByID", mock.Anything, testTenantID, "asset-1").Return(asset, nil).Once()
	suite.assetRepo.On("FindCategoryByID", mock.Anything, testTenantID, "cat-1").Return(&suite.category, nil).Once()
	suite.assetRepo.On("UpdateAsset", mock.Anything, mock.AnythingOfType("domain.FixedAsset")).Return(nil).Once()

	capDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	capitalized, err := suite.service.CapitalizeAsset(context.Background(), testTenantID, "asset-1", dto.CapitalizeAssetRequest{CapitalizationDate: capDate}, testMakerID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssetCapitalized, capitalized.Status)
	suite.Equal(suite.category.AssetAccountID, capitalized.AssetAccountID)
	suite.Equal(suite.category.AccumDepreciationAcctID, capitalized.AccumDepreciationAcctID)
	suite.Equal(suite.category.DepreciationExpenseID, capitalized.DepreciationExpenseID)
	suite.Require().NotNil(capitalized.CapitalizedAt)
	suite.Equal(capDate, *capitalized.CapitalizedAt)
}

func (suite *AssetServiceTestSuite) TestCapitalizeAssetOnlyFromDraft() {
	asset := &domain.FixedAsset{AssetID: "asset-1", TenantID: testTenantID, CategoryID: "cat-1", Status: domain.AssetCapitalized}
	suite.assetRepo.On("FindAssetByID", mock.Anything, testTenantID, "asset-1").Return(asset, nil).Once()

	_, err := suite.service.CapitalizeAsset(context.Background(), testTenantID, "asset-1", dto.CapitalizeAssetRequest{CapitalizationDate: time.Now()}, testMakerID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.assetRepo.AssertNotCalled(suite.T(), "UpdateAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestDisposeAssetSuccess() {
	capDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	asset := &domain.FixedAsset{
		AssetID:       "asset-1",
		TenantID:      testTenantID,
		CategoryID:    "cat-1",
		Status:        domain.AssetCapitalized,
		CapitalizedAt: &capDate,
	}
	suite.assetRepo.On("FindAssetByID", mock.Anything, testTenantID, "asset-1").Return(asset, nil).Once()
	suite.assetRepo.On("UpdateAsset", mock.Anything, mock.AnythingOfType("domain.FixedAsset")).Return(nil).Once()

	dispDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	disposed, err := suite.service.DisposeAsset(context.Background(), testTenantID, "asset-1", dto.DisposeAssetRequest{DisposalDate: dispDate}, testMakerID)

	suite.Require().NoError(err)
	suite.Equal(domain.AssetDisposed, disposed.Status)
	suite.Require().NotNil(disposed.DisposedAt)
	suite.Equal(dispDate, *disposed.DisposedAt)
}

func (suite *AssetServiceTestSuite) TestDisposeAssetOnlyFromCapitalized() {
	asset := &domain.FixedAsset{AssetID: "asset-1", TenantID: testTenantID, Status: domain.AssetDraft}
	suite.assetRepo.On("FindAssetByID", mock.Anything, testTenantID, "asset-1").Return(asset, nil).Once()

	_, err := suite.service.DisposeAsset(context.Background(), testTenantID, "asset-1", dto.DisposeAssetRequest{DisposalDate: time.Now()}, testMakerID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *AssetServiceTestSuite) TestMonthlyDepreciationRounding() {
	asset := domain.FixedAsset{
		Cost:             decimal.NewFromInt(1000),
		ResidualValue:    decimal.NewFromInt(100),
		UsefulLifeMonths: 7,
	}

	// (1000 - 100) / 7 = 128.571..., rounded to 2 places
	suite.True(asset.MonthlyDepreciation().Equal(decimal.NewFromFloat(128.57)))
}

func TestAssetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
