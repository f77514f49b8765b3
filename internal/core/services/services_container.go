package services

import (
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/pkg/cache"
	"github.com/bahikhata/retail_ledger/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, reportCache *cache.TrialBalanceCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Inventory first since the posting engine depends on it.
	container.Inventory = NewInventoryService(repos.StockBatchRepo)

	container.Posting = NewPostingService(
		repos.LedgerRepo,
		repos.DocumentStatusRepo,
		repos.DiscrepancyRepo,
		container.Inventory,
		reportCache,
		cfg.RoundingTolerance,
		cfg.CompanyState,
	)
	container.Reporting = NewReportingService(repos.LedgerRepo, reportCache)
	container.Reconciliation = NewReconciliationService(repos.LedgerRepo, repos.DiscrepancyRepo)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PostingSvcFacade  = (*postingService)(nil)
	_ portssvc.ReportingSvc      = (*reportingService)(nil)
	_ portssvc.ReconciliationSvc = (*reconciliationService)(nil)
	_ portssvc.InventorySvc      = (*inventoryService)(nil)
	_ portssvc.BankAccountSvc    = (*bankAccountService)(nil)
)
