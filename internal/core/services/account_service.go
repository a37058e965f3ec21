package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/dto"
	"github.com/quartzerp/glcore/internal/middleware"
)

// accountService provides the account directory consulted by the posting engine.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new chart-of-accounts entry for the tenant.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		TenantID:         tenantID,
		Code:             req.Code,
		Name:             req.Name,
		AccountType:      req.AccountType,
		NormalBalance:    req.NormalBalance,
		IsPosting:        req.IsPosting,
		IsControlAccount: req.IsControlAccount,
		IsActive:         true,
		DepartmentReq:    defaultRequirement(req.DepartmentReq),
		ProjectReq:       defaultRequirement(req.ProjectReq),
		FundReq:          defaultRequirement(req.FundReq),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account scoped to the tenant.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// defaultRequirement treats an unset dimension requirement as OPTIONAL.
func defaultRequirement(req domain.DimensionRequirement) domain.DimensionRequirement {
	if req == "" {
		return domain.DimensionOptional
	}
	return req
}
