package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/dto"
)

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByPeriod(ctx context.Context, tenantID string, period domain.AccountingPeriod, status *domain.JournalStatus) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, period, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		t := args.Get(1).(string)
		token = &t
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) FindOpeningJournal(ctx context.Context, tenantID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) CountPostedNonOpeningSince(ctx context.Context, tenantID string, cutover time.Time) (int, error) {
	args := m.Called(ctx, tenantID, cutover)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.JournalEntry) error {
	return m.Called(ctx, journal).Error(0)
}

func (m *MockJournalRepository) ReplaceJournal(ctx context.Context, journal domain.JournalEntry) error {
	return m.Called(ctx, journal).Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatus(ctx context.Context, journal domain.JournalEntry) error {
	return m.Called(ctx, journal).Error(0)
}

func (m *MockJournalRepository) PostJournal(ctx context.Context, journal domain.JournalEntry, runID *string) (int64, error) {
	args := m.Called(ctx, journal, runID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpeningPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListChecklistItems(ctx context.Context, periodID string) ([]domain.ChecklistItem, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChecklistItem), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod, checklist []domain.ChecklistItem) error {
	return m.Called(ctx, period, checklist).Error(0)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, period domain.AccountingPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *MockPeriodRepository) CompleteChecklistItem(ctx context.Context, periodID string, itemID string, userID string, at time.Time) error {
	return m.Called(ctx, periodID, itemID, userID, at).Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, tenantID string, userID string) (*domain.User, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) CountActiveAdmins(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, tenantID string, userID string, actorID string, at time.Time) error {
	return m.Called(ctx, tenantID, userID, actorID, at).Error(0)
}

// --- Mock SoDRepository ---

type MockSoDRepository struct {
	mock.Mock
}

var _ portsrepo.SoDRepositoryFacade = (*MockSoDRepository)(nil)

func (m *MockSoDRepository) ListSoDRules(ctx context.Context, tenantID string) ([]domain.SoDRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SoDRule), args.Error(1)
}

func (m *MockSoDRepository) FindRolesByIDs(ctx context.Context, tenantID string, roleIDs []string) ([]domain.Role, error) {
	args := m.Called(ctx, tenantID, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetLine(ctx context.Context, tenantID string, accountID string, periodID string, departmentID *string) (*domain.BudgetLine, error) {
	args := m.Called(ctx, tenantID, accountID, periodID, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLine), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudgetLine(ctx context.Context, line domain.BudgetLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockBudgetRepository) AddActual(ctx context.Context, tenantID string, accountID string, periodID string, departmentID *string, amount decimal.Decimal) error {
	return m.Called(ctx, tenantID, accountID, periodID, departmentID, amount).Error(0)
}

// --- Mock AssetRepository ---

type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepositoryFacade = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, tenantID string, assetID string) (*domain.FixedAsset, error) {
	args := m.Called(ctx, tenantID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) FindCategoryByID(ctx context.Context, tenantID string, categoryID string) (*domain.FixedAssetCategory, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedAssetCategory), args.Error(1)
}

func (m *MockAssetRepository) ListDepreciableAssets(ctx context.Context, tenantID string, cutoff time.Time) ([]domain.FixedAsset, error) {
	args := m.Called(ctx, tenantID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) FindRunByPeriod(ctx context.Context, tenantID string, periodID string) (*domain.DepreciationRun, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepreciationRun), args.Error(1)
}

func (m *MockAssetRepository) FindRunLines(ctx context.Context, runID string) ([]domain.DepreciationLine, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepreciationLine), args.Error(1)
}

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.FixedAsset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *MockAssetRepository) SaveCategory(ctx context.Context, category domain.FixedAssetCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockAssetRepository) CreateRun(ctx context.Context, run domain.DepreciationRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *MockAssetRepository) DeleteRun(ctx context.Context, runID string) error {
	return m.Called(ctx, runID).Error(0)
}

// --- Mock ReviewPackRepository ---

type MockReviewPackRepository struct {
	mock.Mock
}

var _ portsrepo.ReviewPackRepositoryFacade = (*MockReviewPackRepository)(nil)

func (m *MockReviewPackRepository) FindPackByID(ctx context.Context, tenantID string, packID string) (*domain.ReviewPack, error) {
	args := m.Called(ctx, tenantID, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewPack), args.Error(1)
}

func (m *MockReviewPackRepository) ListPacksByPeriod(ctx context.Context, tenantID string, periodID string) ([]domain.ReviewPack, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewPack), args.Error(1)
}

func (m *MockReviewPackRepository) SavePack(ctx context.Context, pack domain.ReviewPack) error {
	return m.Called(ctx, pack).Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveEvent(ctx context.Context, event domain.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

// --- Mock AccountService (as consumed by the journal service) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock PeriodService ---

type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, tenantID string, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) GetOpeningPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ListChecklist(ctx context.Context, tenantID string, periodID string) ([]domain.ChecklistItem, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChecklistItem), args.Error(1)
}

func (m *MockPeriodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, tenantID string, periodID string, userID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ReopenPeriod(ctx context.Context, tenantID string, periodID string, req dto.ReopenPeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) CompleteChecklistItem(ctx context.Context, tenantID string, periodID string, itemID string, userID string) error {
	return m.Called(ctx, tenantID, periodID, itemID, userID).Error(0)
}

// --- Mock BudgetService ---

type MockBudgetService struct {
	mock.Mock
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

func (m *MockBudgetService) EvaluateJournal(ctx context.Context, tenantID string, journal domain.JournalEntry, period domain.AccountingPeriod) (domain.BudgetStatus, []string, error) {
	args := m.Called(ctx, tenantID, journal, period)
	var flags []string
	if args.Get(1) != nil {
		flags = args.Get(1).([]string)
	}
	return args.Get(0).(domain.BudgetStatus), flags, args.Error(2)
}

func (m *MockBudgetService) RecordActuals(ctx context.Context, tenantID string, journal domain.JournalEntry, period domain.AccountingPeriod) error {
	return m.Called(ctx, tenantID, journal, period).Error(0)
}

func (m *MockBudgetService) SetBudgetLine(ctx context.Context, tenantID string, req dto.SetBudgetLineRequest, userID string) (*domain.BudgetLine, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLine), args.Error(1)
}

// --- Mock SoDService ---

type MockSoDService struct {
	mock.Mock
}

var _ portssvc.SoDSvcFacade = (*MockSoDService)(nil)

func (m *MockSoDService) FindPreparer(ctx context.Context, tenantID string) (*domain.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSoDService) ValidateRoleSet(ctx context.Context, tenantID string, roleIDs []string) ([]domain.ConflictingPair, error) {
	args := m.Called(ctx, tenantID, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictingPair), args.Error(1)
}

func (m *MockSoDService) ValidateRoleAssignment(ctx context.Context, tenantID string, targetUserID string, roleIDs []string) ([]domain.ConflictingPair, error) {
	args := m.Called(ctx, tenantID, targetUserID, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictingPair), args.Error(1)
}

func (m *MockSoDService) DeactivateUser(ctx context.Context, tenantID string, targetUserID string, actorID string) error {
	return m.Called(ctx, tenantID, targetUserID, actorID).Error(0)
}

// --- Mock JournalService (as consumed by the depreciation engine) ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) SubmitJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReviewJournal(ctx context.Context, tenantID string, journalID string, req dto.ReviewJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) RejectJournal(ctx context.Context, tenantID string, journalID string, req dto.RejectJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ParkJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReturnToReview(ctx context.Context, tenantID string, journalID string, req dto.ReturnJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostJournal(ctx context.Context, tenantID string, journalID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostJournalForRun(ctx context.Context, tenantID string, journalID string, runID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, runID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseJournal(ctx context.Context, tenantID string, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpsertOpeningJournal(ctx context.Context, tenantID string, req dto.UpsertOpeningJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock FileStore ---

type MockFileStore struct {
	mock.Mock
}

var _ portssvc.FileStoreSvc = (*MockFileStore)(nil)

func (m *MockFileStore) Put(ctx context.Context, key string, data []byte) error {
	return m.Called(ctx, key, data).Error(0)
}

func (m *MockFileStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Recording audit sink ---

// recordingAudit captures events synchronously so tests can assert on BLOCKED
// outcomes without timing games.
type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

var _ portssvc.AuditRecorderSvc = (*recordingAudit)(nil)

func (r *recordingAudit) Record(_ context.Context, event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingAudit) Close(context.Context) error { return nil }

func (r *recordingAudit) Events() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingAudit) LastEvent() *domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	e := r.events[len(r.events)-1]
	return &e
}
