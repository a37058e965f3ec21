package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		PeriodRepo:     newPgxPeriodRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		AssetRepo:      newPgxAssetRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		SoDRepo:        newPgxSoDRepository(dbPool),
		BudgetRepo:     newPgxBudgetRepository(dbPool),
		ReviewPackRepo: newPgxReviewPackRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
	}
}
