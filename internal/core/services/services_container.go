package services

import (
	"log/slog"

	"github.com/shopspring/decimal"

	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The file store is injected by the platform layer so the pack
// builder stays backend-agnostic.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, store portssvc.FileStoreSvc, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The audit sink comes first since nearly every other service records to it.
	container.Audit = NewAuditService(repos.AuditRepo, cfg.AuditQueueSize, logger)

	riskCfg := DefaultRiskConfig()
	if cfg.HighValueThreshold > 0 {
		riskCfg.HighValueThreshold = decimal.NewFromFloat(cfg.HighValueThreshold)
	}
	riskCfg.BackdateGraceDays = cfg.BackdateGraceDays
	riskCfg.LatePostingGraceDays = cfg.LatePostingGraceDays
	container.Risk = NewRiskService(riskCfg)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, container.Audit)
	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.SoD = NewSoDService(repos.UserRepo, repos.SoDRepo, container.Audit)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Period,
		container.Risk,
		container.Budget,
		container.Audit,
	)

	container.Asset = NewAssetService(repos.AssetRepo)
	container.Depreciation = NewDepreciationService(
		repos.AssetRepo,
		container.Period,
		container.Journal,
		container.SoD,
		container.Audit,
	)

	container.ReviewPack = NewReviewPackService(
		repos.ReviewPackRepo,
		repos.JournalRepo,
		container.Period,
		store,
		container.Audit,
	)

	return container
}
