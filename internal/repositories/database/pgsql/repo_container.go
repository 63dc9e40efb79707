package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &BaseRepository{Pool: dbPool},
		BusinessRepo:  newPgxBusinessRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		VoucherRepo:   newPgxVoucherRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		InventoryRepo: newPgxInventoryRepository(dbPool),
	}
}
