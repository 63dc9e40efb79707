package services

import (
	"github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with all services initialized.
func NewServiceContainer(cfg *config.Config, repos repositories.RepositoryProvider) *services.ServiceContainer {
	businessSvc := NewBusinessService(repos.TxManager, repos.BusinessRepo, repos.AccountRepo,
		WithBusinessFiscalYearStart(cfg.FiscalYearStartMonth))
	accountSvc := NewAccountService(repos.TxManager, repos.AccountRepo)
	voucherSvc := NewVoucherService(repos.TxManager, repos.VoucherRepo, repos.AccountRepo, repos.BusinessRepo)
	ledgerSvc := NewLedgerService(repos.AccountRepo, repos.LedgerRepo)
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.VoucherRepo, repos.InventoryRepo,
		WithReportingFiscalYearStartMonth(cfg.FiscalYearStartMonth),
		WithRecentVoucherCount(cfg.RecentVoucherCount))
	openingSvc := NewOpeningPositionService(repos.TxManager, repos.BusinessRepo, repos.AccountRepo,
		repos.VoucherRepo, repos.InventoryRepo)

	return &services.ServiceContainer{
		Business:  businessSvc,
		Account:   accountSvc,
		Voucher:   voucherSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
		Opening:   openingSvc,
	}
}
