package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/core/services"
)

type ReviewPackServiceTestSuite struct {
	suite.Suite
	packRepo    *MockReviewPackRepository
	journalRepo *MockJournalRepository
	periodSvc   *MockPeriodService
	store       *MockFileStore
	audit       *recordingAudit
	service     portssvc.ReviewPackSvcFacade

	period domain.AccountingPeriod
}

func (suite *ReviewPackServiceTestSuite) SetupTest() {
	suite.packRepo = new(MockReviewPackRepository)
	suite.journalRepo = new(MockJournalRepository)
	suite.periodSvc = new(MockPeriodService)
	suite.store = new(MockFileStore)
	suite.audit = new(recordingAudit)
	suite.service = services.NewReviewPackService(
		suite.packRepo,
		suite.journalRepo,
		suite.periodSvc,
		suite.store,
		suite.audit,
	)

	suite.period = domain.AccountingPeriod{
		PeriodID:  "period-1",
		TenantID:  testTenantID,
		Name:      "2026-08",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodClosed,
	}
}

func (suite *ReviewPackServiceTestSuite) postedJournal(id string, number int64) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:     id,
		TenantID:      testTenantID,
		JournalDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description:   "Posted entry " + id,
		Status:        domain.Posted,
		Source:        domain.SourceManual,
		JournalNumber: &number,
	}
}

func (suite *ReviewPackServiceTestSuite) journalLines(journalID string, amount int64) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: journalID + "-l1", JournalID: journalID, AccountID: expenseAccountID, Debit: decimal.NewFromInt(amount)},
		{LineID: journalID + "-l2", JournalID: journalID, AccountID: cashAccountID, Credit: decimal.NewFromInt(amount)},
	}
}

func (suite *ReviewPackServiceTestSuite) expectGeneration(journals []domain.JournalEntry) (stored *[]byte, saved *domain.ReviewPack) {
	stored = new([]byte)
	saved = new(domain.ReviewPack)

	posted := domain.Posted
	suite.periodSvc.On("GetPeriodByID", mock.Anything, testTenantID, "period-1").Return(&suite.period, nil).Once()
	suite.journalRepo.On("ListJournalsByPeriod", mock.Anything, testTenantID, suite.period, &posted).Return(journals, nil).Once()
	for _, journal := range journals {
		suite.journalRepo.On("FindLinesByJournalID", mock.Anything, journal.JournalID).
			Return(suite.journalLines(journal.JournalID, 500), nil).Once()
	}
	suite.store.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) { *stored = args.Get(2).([]byte) }).
		Return(nil).Once()
	suite.packRepo.On("SavePack", mock.Anything, mock.AnythingOfType("domain.ReviewPack")).
		Run(func(args mock.Arguments) { *saved = args.Get(1).(domain.ReviewPack) }).
		Return(nil).Once()
	return stored, saved
}

func (suite *ReviewPackServiceTestSuite) TestGeneratePackHashesAndStoresArchive() {
	journals := []domain.JournalEntry{
		suite.postedJournal("j-1", 1),
		suite.postedJournal("j-2", 2),
	}
	stored, saved := suite.expectGeneration(journals)

	pack, err := suite.service.GeneratePack(context.Background(), testTenantID, "period-1", testCheckerID)

	suite.Require().NoError(err)
	suite.Equal(2, pack.JournalCount)
	suite.Equal(int64(len(*stored)), pack.SizeBytes)

	sum := sha256.Sum256(*stored)
	suite.Equal(hex.EncodeToString(sum[:]), pack.ArchiveSHA256)
	suite.Equal(pack.ArchiveSHA256, saved.ArchiveSHA256)
	suite.Contains(pack.StorageKey, testTenantID+"/period-1/")

	event := suite.audit.LastEvent()
	suite.Require().NotNil(event)
	suite.Equal("GENERATE_PACK", event.Action)
	suite.Equal(domain.OutcomeSuccess, event.Outcome)
	suite.store.AssertExpectations(suite.T())
	suite.packRepo.AssertExpectations(suite.T())
}

func (suite *ReviewPackServiceTestSuite) TestGeneratedArchiveLeadsWithManifest() {
	journals := []domain.JournalEntry{suite.postedJournal("j-1", 1)}
	stored, _ := suite.expectGeneration(journals)

	pack, err := suite.service.GeneratePack(context.Background(), testTenantID, "period-1", testCheckerID)
	suite.Require().NoError(err)

	zr, err := zip.NewReader(bytes.NewReader(*stored), int64(len(*stored)))
	suite.Require().NoError(err)
	suite.Require().Len(zr.File, 2)
	suite.Equal("manifest.json", zr.File[0].Name)
	suite.Equal("journals/1.json", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	suite.Require().NoError(err)
	manifestBytes, err := io.ReadAll(rc)
	suite.Require().NoError(err)
	suite.Require().NoError(rc.Close())

	sum := sha256.Sum256(manifestBytes)
	suite.Equal(hex.EncodeToString(sum[:]), pack.ManifestSHA256)

	var manifest struct {
		TenantID     string `json:"tenantID"`
		PeriodID     string `json:"periodID"`
		JournalCount int    `json:"journalCount"`
		Journals     []struct {
			JournalNumber int64  `json:"journalNumber"`
			File          string `json:"file"`
		} `json:"journals"`
	}
	suite.Require().NoError(json.Unmarshal(manifestBytes, &manifest))
	suite.Equal(testTenantID, manifest.TenantID)
	suite.Equal("period-1", manifest.PeriodID)
	suite.Equal(1, manifest.JournalCount)
	suite.Require().Len(manifest.Journals, 1)
	suite.Equal(int64(1), manifest.Journals[0].JournalNumber)
	suite.Equal("journals/1.json", manifest.Journals[0].File)
}

func (suite *ReviewPackServiceTestSuite) TestGeneratePackManifestIsDeterministic() {
	journals := []domain.JournalEntry{suite.postedJournal("j-1", 1)}

	_, _ = suite.expectGeneration(journals)
	first, err := suite.service.GeneratePack(context.Background(), testTenantID, "period-1", testCheckerID)
	suite.Require().NoError(err)

	_, _ = suite.expectGeneration(journals)
	second, err := suite.service.GeneratePack(context.Background(), testTenantID, "period-1", testCheckerID)
	suite.Require().NoError(err)

	suite.NotEqual(first.PackID, second.PackID)
	suite.Equal(first.ManifestSHA256, second.ManifestSHA256)
}

func (suite *ReviewPackServiceTestSuite) TestGeneratePackEmptyPeriod() {
	stored, _ := suite.expectGeneration(nil)

	pack, err := suite.service.GeneratePack(context.Background(), testTenantID, "period-1", testCheckerID)

	suite.Require().NoError(err)
	suite.Equal(0, pack.JournalCount)
	suite.NotEmpty(*stored) // archive still carries the manifest
}

func (suite *ReviewPackServiceTestSuite) TestGeneratePackFailsWhenStorageFails() {
	posted := domain.Posted
	suite.periodSvc.On("GetPeriodByID", mock.Anything, testTenantID, "period-1").Return(&suite.period, nil).Once()
	suite.journalRepo.On("ListJournalsByPeriod", mock.Anything, testTenantID, suite.period, &posted).Return([]domain.JournalEntry{}, nil).Once()
	suite.store.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).
		Return(apperrors.NewAppError(500, "disk full", nil)).Once()

	_, err := suite.service.GeneratePack(context.Background(), testTenantID, "period-1", testCheckerID)

	suite.Require().Error(err)
	suite.packRepo.AssertNotCalled(suite.T(), "SavePack", mock.Anything, mock.Anything)
}

func (suite *ReviewPackServiceTestSuite) TestGetPackArchiveVerifiesHash() {
	data := []byte("archive-bytes")
	sum := sha256.Sum256(data)
	pack := &domain.ReviewPack{
		PackID:        "pack-1",
		TenantID:      testTenantID,
		PeriodID:      "period-1",
		StorageKey:    "tenant-1/period-1/pack-1.zip",
		ArchiveSHA256: hex.EncodeToString(sum[:]),
	}
	suite.packRepo.On("FindPackByID", mock.Anything, testTenantID, "pack-1").Return(pack, nil).Once()
	suite.store.On("Get", mock.Anything, pack.StorageKey).Return(data, nil).Once()

	got, err := suite.service.GetPackArchive(context.Background(), testTenantID, "pack-1")

	suite.Require().NoError(err)
	suite.Equal(data, got)
}

func (suite *ReviewPackServiceTestSuite) TestGetPackArchiveDetectsTampering() {
	data := []byte("archive-bytes")
	sum := sha256.Sum256(data)
	pack := &domain.ReviewPack{
		PackID:        "pack-1",
		TenantID:      testTenantID,
		PeriodID:      "period-1",
		StorageKey:    "tenant-1/period-1/pack-1.zip",
		ArchiveSHA256: hex.EncodeToString(sum[:]),
	}
	suite.packRepo.On("FindPackByID", mock.Anything, testTenantID, "pack-1").Return(pack, nil).Once()
	suite.store.On("Get", mock.Anything, pack.StorageKey).Return([]byte("tampered-bytes"), nil).Once()

	_, err := suite.service.GetPackArchive(context.Background(), testTenantID, "pack-1")

	suite.Require().ErrorIs(err, apperrors.ErrInternal)
}

func (suite *ReviewPackServiceTestSuite) TestListPacksValidatesPeriod() {
	suite.periodSvc.On("GetPeriodByID", mock.Anything, testTenantID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListPacks(context.Background(), testTenantID, "missing")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.packRepo.AssertNotCalled(suite.T(), "ListPacksByPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewPackServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewPackServiceTestSuite))
}
