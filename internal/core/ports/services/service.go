package services

// ServiceContainer holds instances of all the application services. This is the
// entry point the (external) transport layer integrates against.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Period       PeriodSvcFacade
	Journal      JournalSvcFacade
	Risk         RiskScorerSvc
	Budget       BudgetSvcFacade
	SoD          SoDSvcFacade
	Asset        AssetSvcFacade
	Depreciation DepreciationSvcFacade
	ReviewPack   ReviewPackSvcFacade
	Audit        AuditRecorderSvc
}
