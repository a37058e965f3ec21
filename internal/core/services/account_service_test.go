package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/core/services"
	"github.com/quartzerp/glcore/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	service     portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.accountRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccountDefaultsDimensionsToOptional() {
	var saved domain.Account
	suite.accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	req := dto.CreateAccountRequest{
		Code:          "6000",
		Name:          "Office Expense",
		AccountType:   domain.Expense,
		NormalBalance: domain.NormalDebit,
		IsPosting:     true,
	}

	account, err := suite.service.CreateAccount(context.Background(), testTenantID, req, testCheckerID)

	suite.Require().NoError(err)
	suite.True(account.IsActive)
	suite.Equal(domain.DimensionOptional, saved.DepartmentReq)
	suite.Equal(domain.DimensionOptional, saved.ProjectReq)
	suite.Equal(domain.DimensionOptional, saved.FundReq)
	suite.True(saved.AcceptsPostings())
}

func (suite *AccountServiceTestSuite) TestCreateAccountKeepsExplicitRequirements() {
	var saved domain.Account
	suite.accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	req := dto.CreateAccountRequest{
		Code:          "6100",
		Name:          "Departmental Expense",
		AccountType:   domain.Expense,
		NormalBalance: domain.NormalDebit,
		IsPosting:     true,
		DepartmentReq: domain.DimensionRequired,
		FundReq:       domain.DimensionForbidden,
	}

	_, err := suite.service.CreateAccount(context.Background(), testTenantID, req, testCheckerID)

	suite.Require().NoError(err)
	suite.Equal(domain.DimensionRequired, saved.DepartmentReq)
	suite.Equal(domain.DimensionForbidden, saved.FundReq)
}

func (suite *AccountServiceTestSuite) TestCreateAccountDuplicateCode() {
	suite.accountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	req := dto.CreateAccountRequest{
		Code:          "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.NormalDebit,
		IsPosting:     true,
	}

	_, err := suite.service.CreateAccount(context.Background(), testTenantID, req, testCheckerID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestGetAccountByIDNotFound() {
	suite.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, "acc-ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(context.Background(), testTenantID, "acc-ghost")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
