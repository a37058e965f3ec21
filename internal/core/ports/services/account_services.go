package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/quartzerp/glcore/internal/dto"
)

// AccountReaderSvc defines read operations for the account directory.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriterSvc defines write operations for the account directory.
type AccountWriterSvc interface {
	// CreateAccount creates a chart-of-accounts entry.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
