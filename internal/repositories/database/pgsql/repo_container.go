package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bankAccountRepo := newPgxBankAccountRepository(dbPool)
	discrepancyRepo := newPgxDiscrepancyRepository(dbPool)
	stockBatchRepo := newPgxStockBatchRepository(dbPool)
	documentStatusRepo := newPgxDocumentStatusRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, bankAccountRepo, discrepancyRepo)

	return portsrepo.RepositoryProvider{
		LedgerRepo:         ledgerRepo,
		StockBatchRepo:     stockBatchRepo,
		BankAccountRepo:    bankAccountRepo,
		DiscrepancyRepo:    discrepancyRepo,
		DocumentStatusRepo: documentStatusRepo,
	}
}
